package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shoplite/internal/cache"
	"github.com/shoplite/internal/config"
	publichandlers "github.com/shoplite/internal/http/handlers/public"
	storehandlers "github.com/shoplite/internal/http/handlers/store"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化店铺 API 路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "shoplite"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS, cfg.Session.Header))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(SessionMiddleware(c.Sessions, cfg.Session))
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
			auth.POST("/guest", publicHandler.LoginAsGuest)
			auth.POST("/logout", publicHandler.Logout)
		}
		apiV1.GET("/me", publicHandler.GetMe)

		// 商品浏览
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/sort-modes", publicHandler.GetSortModes)

		// 筛选条件（仅会话内）
		apiV1.GET("/filters", publicHandler.GetFilters)
		apiV1.PUT("/filters", publicHandler.UpdateFilters)
		apiV1.DELETE("/filters", publicHandler.ResetFilters)

		// 购物车
		cart := apiV1.Group("/cart")
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/retry", publicHandler.RetryCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:product_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cart.POST("/checkout", publicHandler.Checkout)
			cart.DELETE("", publicHandler.ClearCart)
		}
	}

	registerHealth(r)
	return r
}

// SetupStoreRouter 初始化模拟存储路由（json-server 兼容）
func SetupStoreRouter(cfg *config.Config, c *provider.Container) (*gin.Engine, error) {
	if c == nil || c.StoreService == nil {
		return nil, fmt.Errorf("mock store is not initialized")
	}
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS, cfg.Session.Header))

	registerHealth(r)
	storehandlers.New(c.StoreService).Register(r)
	return r, nil
}

func registerHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
