package cache

import (
	"context"
	"time"

	"github.com/shoplite/internal/models"
)

const catalogListKey = "catalog:products"

func catalogProductKey(id models.ProductID) string {
	return "catalog:product:" + id.String()
}

// GetCatalog 获取商品列表缓存
func GetCatalog(ctx context.Context) ([]models.Product, bool, error) {
	var products []models.Product
	hit, err := GetJSON(ctx, catalogListKey, &products)
	if err != nil || !hit {
		return nil, hit, err
	}
	return products, true, nil
}

// SetCatalog 写入商品列表缓存
func SetCatalog(ctx context.Context, products []models.Product, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, catalogListKey, products, ttl)
}

// GetProduct 获取单个商品缓存
func GetProduct(ctx context.Context, id models.ProductID) (*models.Product, bool, error) {
	if id <= 0 {
		return nil, false, nil
	}
	var product models.Product
	hit, err := GetJSON(ctx, catalogProductKey(id), &product)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &product, true, nil
}

// SetProduct 写入单个商品缓存
func SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.ID <= 0 || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, catalogProductKey(product.ID), product, ttl)
}

// InvalidateCatalog 清除商品缓存
func InvalidateCatalog(ctx context.Context, ids ...models.ProductID) error {
	if err := Del(ctx, catalogListKey); err != nil {
		return err
	}
	for _, id := range ids {
		if err := Del(ctx, catalogProductKey(id)); err != nil {
			return err
		}
	}
	return nil
}
