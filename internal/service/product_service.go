package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplite/internal/cache"
	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"

	"golang.org/x/sync/singleflight"
)

// sharedFetchTimeout 合并后的远端调用不跟随单个调用方取消，只受此超时约束
const sharedFetchTimeout = 10 * time.Second

// ProductService 商品目录服务
type ProductService struct {
	products ProductGateway
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewProductService 创建商品服务
func NewProductService(products ProductGateway, cacheTTL time.Duration) *ProductService {
	return &ProductService{
		products: products,
		cacheTTL: cacheTTL,
	}
}

// List 获取全部商品（优先读缓存）
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	if cached, hit, err := cache.GetCatalog(ctx); err != nil {
		logger.Warnw("catalog_cache_get_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	value, err := awaitShared(ctx, s.group.DoChan("catalog", func() (interface{}, error) {
		fetchCtx, cancel := sharedFetchContext(ctx)
		defer cancel()
		products, err := s.products.List(fetchCtx)
		if err != nil {
			return nil, err
		}
		if err := cache.SetCatalog(fetchCtx, products, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_set_failed", "error", err)
		}
		return products, nil
	}))
	if err != nil {
		return nil, classifyRemoteError(err)
	}
	products := value.([]models.Product)
	return append([]models.Product(nil), products...), nil
}

// Browse 获取商品并应用筛选与排序
func (s *ProductService) Browse(ctx context.Context, selection FilterSelection) ([]models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyProductFilter(products, selection), nil
}

// Get 获取单个商品，并发请求同一商品时合并为一次远端调用
func (s *ProductService) Get(ctx context.Context, id models.ProductID) (*models.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidProduct
	}
	if cached, hit, err := cache.GetProduct(ctx, id); err != nil {
		logger.Warnw("product_cache_get_failed", "product_id", id, "error", err)
	} else if hit {
		return cached, nil
	}

	value, err := awaitShared(ctx, s.group.DoChan("product:"+id.String(), func() (interface{}, error) {
		fetchCtx, cancel := sharedFetchContext(ctx)
		defer cancel()
		product, err := s.products.GetByID(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		if err := cache.SetProduct(fetchCtx, product, s.cacheTTL); err != nil {
			logger.Warnw("product_cache_set_failed", "product_id", id, "error", err)
		}
		return product, nil
	}))
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id.String())
		}
		return nil, classifyRemoteError(err)
	}
	product := *value.(*models.Product)
	return &product, nil
}

// RefreshCatalog 绕过缓存从远端拉取商品并回写缓存，返回商品数量
func (s *ProductService) RefreshCatalog(ctx context.Context) (int, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return 0, classifyRemoteError(err)
	}
	if err := cache.SetCatalog(ctx, products, s.cacheTTL); err != nil {
		logger.Warnw("catalog_cache_set_failed", "error", err)
	}
	for i := range products {
		if err := cache.SetProduct(ctx, &products[i], s.cacheTTL); err != nil {
			logger.Warnw("product_cache_set_failed", "product_id", products[i].ID, "error", err)
		}
	}
	return len(products), nil
}

func sharedFetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
}

// awaitShared 调用方取消时提前返回，合并调用继续为其他等待者执行
func awaitShared(ctx context.Context, ch <-chan singleflight.Result) (interface{}, error) {
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
