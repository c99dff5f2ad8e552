package models

import (
	"github.com/shoplite/internal/constants"
)

// Product 商品文档（只读）
type Product struct {
	ID                 ProductID `json:"id"`                           // 商品ID
	Name               string    `json:"name"`                         // 名称
	Description        string    `json:"description"`                  // 描述
	Category           string    `json:"category"`                     // 分类（固定集合）
	Price              Money     `json:"price"`                        // 价格
	Rating             float64   `json:"rating"`                       // 评分 0-5
	DiscountPercentage *float64  `json:"discountPercentage,omitempty"` // 折扣百分比（可选）
	Image              string    `json:"image,omitempty"`              // 图片地址（可选）
}

// HasDiscount 是否展示折扣标签
func (p *Product) HasDiscount() bool {
	return p != nil && p.DiscountPercentage != nil && *p.DiscountPercentage > 0
}

// IsKnownCategory 判断分类是否属于固定集合
func IsKnownCategory(category string) bool {
	for _, item := range constants.ProductCategories {
		if item == category {
			return true
		}
	}
	return false
}
