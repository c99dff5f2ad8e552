package provider

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shoplite/internal/cache"
	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/queue"
	"github.com/shoplite/internal/repository"
	"github.com/shoplite/internal/service"
	"github.com/shoplite/internal/session"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultTaxRate = decimal.RequireFromString("0.05")

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Gateway     *gateway.Client
	Sessions    *session.Manager

	// 模拟存储（仅 store 模式）
	DB           *gorm.DB
	DocumentRepo repository.DocumentRepository

	// Services
	AuthService    *service.AuthService
	ProductService *service.ProductService
	CartService    *service.CartService
	StoreService   *service.StoreService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initGateway()
	c.initSessions()
	c.initServices()
	return c
}

func (c *Container) initGateway() {
	storeCfg := c.Config.Store
	c.Gateway = gateway.New(gateway.Options{
		BaseURL: storeCfg.BaseURL,
		Timeout: storeCfg.Timeout(),
		Breaker: gateway.BreakerOptions{
			Enabled:             storeCfg.Breaker.Enabled,
			ConsecutiveFailures: storeCfg.Breaker.ConsecutiveFailures,
			OpenTimeout:         time.Duration(storeCfg.Breaker.OpenSeconds) * time.Second,
			HalfOpenRequests:    storeCfg.Breaker.HalfOpenRequests,
		},
	})
}

func (c *Container) initSessions() {
	var store session.Store
	if client := cache.Client(); client != nil {
		store = session.NewRedisStore(client)
	} else {
		logger.Infow("provider_session_memory_store")
		store = session.NewMemoryStore()
	}
	c.Sessions = session.NewManager(store, c.Config.Session.TTL())
}

func (c *Container) initServices() {
	cartCfg := c.Config.Cart
	catalogTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second

	c.ProductService = service.NewProductService(c.Gateway.Products(), catalogTTL)
	c.AuthService = service.NewAuthService(c.Gateway.Users())
	c.CartService = service.NewCartService(c.Gateway.Users(), c.ProductService, service.CartServiceOptions{
		Retry: service.LoadRetryPolicy{
			Attempts:       cartCfg.LoadRetry.Attempts,
			InitialBackoff: time.Duration(cartCfg.LoadRetry.InitialBackoffMS) * time.Millisecond,
			MaxBackoff:     time.Duration(cartCfg.LoadRetry.MaxBackoffMS) * time.Millisecond,
			AttemptTimeout: time.Duration(cartCfg.LoadRetry.AttemptTimeoutMS) * time.Millisecond,
		},
		TaxRate:     parseTaxRate(cartCfg.TaxRate),
		RemoteClear: cartCfg.RemoteClear,
		Queue:       c.QueueClient,
	})
}

// InitMockStore 打开模拟存储数据库并初始化文档服务
func (c *Container) InitMockStore() error {
	dbCfg := c.Config.MockStore.Database
	if err := ensureSQLiteDir(dbCfg.Driver, dbCfg.DSN); err != nil {
		return err
	}
	db, err := models.OpenDB(dbCfg.Driver, dbCfg.DSN, models.DBPoolConfig{
		MaxOpenConns:           dbCfg.Pool.MaxOpenConns,
		MaxIdleConns:           dbCfg.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: dbCfg.Pool.ConnMaxLifetimeSeconds,
	}, c.Config.Server.Mode == "debug")
	if err != nil {
		logger.Errorw("provider_open_mockstore_failed", "driver", dbCfg.Driver, "error", err)
		return err
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Errorw("provider_migrate_mockstore_failed", "error", err)
		return err
	}
	c.DB = db
	c.DocumentRepo = repository.NewDocumentRepository(db)
	c.StoreService = service.NewStoreService(c.DocumentRepo)
	return nil
}

// Close 释放容器持有的连接
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func parseTaxRate(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultTaxRate
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		logger.Warnw("provider_invalid_tax_rate", "value", raw, "fallback", defaultTaxRate.String())
		return defaultTaxRate
	}
	return rate
}

func ensureSQLiteDir(driver, dsn string) error {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver != "" && driver != "sqlite" {
		return nil
	}
	path := strings.TrimPrefix(strings.TrimSpace(dsn), "file:")
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
