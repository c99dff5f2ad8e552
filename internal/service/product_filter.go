package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/models"
)

// SortMode 商品排序方式
type SortMode string

const (
	SortModeDefault    SortMode = constants.SortDefault
	SortModePriceAsc   SortMode = constants.SortPriceAsc
	SortModePriceDesc  SortMode = constants.SortPriceDesc
	SortModeRatingAsc  SortMode = constants.SortRatingAsc
	SortModeRatingDesc SortMode = constants.SortRatingDesc
)

// 兼容旧前端使用的排序写法
var sortModeAliases = map[string]SortMode{
	"default":    SortModeDefault,
	"id":         SortModeDefault,
	"plowtohigh": SortModePriceAsc,
	"phightolow": SortModePriceDesc,
	"rlowtohigh": SortModeRatingAsc,
	"rhightolow": SortModeRatingDesc,
}

// SortModes 支持的排序方式（展示顺序）
func SortModes() []SortMode {
	return []SortMode{
		SortModeDefault,
		SortModePriceAsc,
		SortModePriceDesc,
		SortModeRatingAsc,
		SortModeRatingDesc,
	}
}

// ParseSortMode 解析排序方式，空值为默认排序
func ParseSortMode(raw string) (SortMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch SortMode(normalized) {
	case SortModeDefault, SortModePriceAsc, SortModePriceDesc, SortModeRatingAsc, SortModeRatingDesc:
		return SortMode(normalized), nil
	}
	if mode, ok := sortModeAliases[normalized]; ok {
		return mode, nil
	}
	return SortModeDefault, fmt.Errorf("%w: %s", ErrInvalidSortMode, raw)
}

// FilterSelection 浏览筛选条件：分类集合 + 排序方式
type FilterSelection struct {
	Categories []string `json:"categories"`
	Sort       SortMode `json:"sort"`
}

// NewFilterSelection 校验并构建筛选条件，分类去重并保持给定顺序
func NewFilterSelection(categories []string, sortRaw string) (FilterSelection, error) {
	mode, err := ParseSortMode(sortRaw)
	if err != nil {
		return FilterSelection{}, err
	}
	selection := FilterSelection{Categories: []string{}, Sort: mode}
	seen := make(map[string]struct{}, len(categories))
	for _, raw := range categories {
		for _, part := range strings.Split(raw, ",") {
			category := strings.TrimSpace(part)
			if category == "" {
				continue
			}
			if !models.IsKnownCategory(category) {
				return FilterSelection{}, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
			}
			if _, ok := seen[category]; ok {
				continue
			}
			seen[category] = struct{}{}
			selection.Categories = append(selection.Categories, category)
		}
	}
	return selection, nil
}

// IsEmpty 无分类且默认排序
func (f FilterSelection) IsEmpty() bool {
	return len(f.Categories) == 0 && f.Sort == SortModeDefault
}

// ApplyProductFilter 按分类过滤并稳定排序，返回新切片，不修改输入
func ApplyProductFilter(products []models.Product, selection FilterSelection) []models.Product {
	result := make([]models.Product, 0, len(products))
	if len(selection.Categories) == 0 {
		result = append(result, products...)
	} else {
		active := make(map[string]struct{}, len(selection.Categories))
		for _, category := range selection.Categories {
			active[category] = struct{}{}
		}
		for _, product := range products {
			if _, ok := active[product.Category]; ok {
				result = append(result, product)
			}
		}
	}

	var less func(a, b *models.Product) bool
	switch selection.Sort {
	case SortModePriceAsc:
		less = func(a, b *models.Product) bool { return a.Price.Decimal.LessThan(b.Price.Decimal) }
	case SortModePriceDesc:
		less = func(a, b *models.Product) bool { return a.Price.Decimal.GreaterThan(b.Price.Decimal) }
	case SortModeRatingAsc:
		less = func(a, b *models.Product) bool { return a.Rating < b.Rating }
	case SortModeRatingDesc:
		less = func(a, b *models.Product) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b *models.Product) bool { return a.ID < b.ID }
	}
	sort.SliceStable(result, func(i, j int) bool {
		return less(&result[i], &result[j])
	})
	return result
}
