package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/queue"

	"github.com/hibiken/asynq"
)

const minCatalogRefreshInterval = 10 * time.Second

// Service 异步队列服务
type Service struct {
	name            string
	server          *asynq.Server
	mux             *asynq.ServeMux
	consumer        *Consumer
	refreshInterval time.Duration
}

// NewService 创建异步队列服务；refreshInterval 大于 0 时定期刷新商品缓存
func NewService(cfg *config.QueueConfig, consumer *Consumer, refreshInterval time.Duration) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	if refreshInterval > 0 && refreshInterval < minCatalogRefreshInterval {
		refreshInterval = minCatalogRefreshInterval
	}
	return &Service{
		name:            "worker",
		server:          server,
		mux:             mux,
		consumer:        consumer,
		refreshInterval: refreshInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Catalog != nil && s.refreshInterval > 0 {
		go s.runCatalogRefreshLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务，等待进行中的任务直到 ctx 到期
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return shutdownWithin(ctx, s.server.Shutdown)
}

func shutdownWithin(ctx context.Context, shutdown func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		shutdown()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) runCatalogRefreshLoop(ctx context.Context) {
	s.consumer.refreshCatalog(ctx)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.consumer.refreshCatalog(ctx)
		}
	}
}
