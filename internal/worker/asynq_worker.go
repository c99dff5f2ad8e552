package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/provider"
	"github.com/shoplite/internal/queue"
	"github.com/shoplite/internal/service"

	"github.com/hibiken/asynq"
)

// RemoteCartClearer 清空远端购物车
type RemoteCartClearer interface {
	ClearRemoteCart(ctx context.Context, userID models.RecordID) error
}

// CatalogRefresher 刷新商品目录缓存
type CatalogRefresher interface {
	RefreshCatalog(ctx context.Context) (int, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	Carts   RemoteCartClearer
	Catalog CatalogRefresher
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{}
	if c == nil {
		return consumer
	}
	if c.CartService != nil {
		consumer.Carts = c.CartService
	}
	if c.ProductService != nil {
		consumer.Catalog = c.ProductService
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartRemoteClear, c.handleCartRemoteClear)
}

// handleCartRemoteClear 用户不存在或请求被拒绝时不再重试；存储不可用时交给 asynq 重试
func (c *Consumer) handleCartRemoteClear(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Carts == nil {
		logger.Debugw("worker_cart_remote_clear_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCartRemoteClearPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_cart_remote_clear_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	userID := models.RecordID(strings.TrimSpace(payload.UserID))
	if userID.IsZero() {
		logger.Debugw("worker_cart_remote_clear_skip_invalid_payload", "receipt_no", payload.ReceiptNo)
		return nil
	}

	err = c.Carts.ClearRemoteCart(ctx, userID)
	switch {
	case err == nil:
		logger.Infow("worker_cart_remote_clear_done", "user_id", userID.String(), "receipt_no", payload.ReceiptNo)
		return nil
	case errors.Is(err, service.ErrUserNotFound):
		logger.Debugw("worker_cart_remote_clear_skip_user_not_found", "user_id", userID.String())
		return nil
	case errors.Is(err, service.ErrStoreUnavailable):
		logger.Warnw("worker_cart_remote_clear_retry", "user_id", userID.String(), "error", err)
		return err
	default:
		logger.Warnw("worker_cart_remote_clear_failed", "user_id", userID.String(), "receipt_no", payload.ReceiptNo, "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
}

// refreshCatalog 刷新一次商品缓存
func (c *Consumer) refreshCatalog(ctx context.Context) {
	if c == nil || c.Catalog == nil {
		return
	}
	count, err := c.Catalog.RefreshCatalog(ctx)
	if err != nil {
		logger.Warnw("worker_catalog_refresh_failed", "error", err)
		return
	}
	logger.Debugw("worker_catalog_refreshed", "count", count)
}
