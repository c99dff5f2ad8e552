package service

import (
	"context"
	"fmt"

	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/models"
)

// UserGateway 用户远端数据访问
type UserGateway interface {
	GetByID(ctx context.Context, id models.RecordID) (*models.User, error)
	FindByCredentials(ctx context.Context, name, password string) ([]models.User, error)
	Replace(ctx context.Context, user *models.User) (*models.User, error)
}

// ProductGateway 商品远端数据访问
type ProductGateway interface {
	GetByID(ctx context.Context, id models.ProductID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

var (
	_ UserGateway    = (*gateway.UserResource)(nil)
	_ ProductGateway = (*gateway.ProductResource)(nil)
)

// classifyRemoteError 将网关错误归类为服务层错误，保留原始信息
func classifyRemoteError(err error) error {
	switch {
	case err == nil:
		return nil
	case gateway.IsUnavailable(err):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreRequestFailed, err)
	}
}
