package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shoplite/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Cart      CartConfig      `mapstructure:"cart"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Security  SecurityConfig  `mapstructure:"security"`
	MockStore MockStoreConfig `mapstructure:"mockstore"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// StoreConfig 远端数据存储（REST）配置
type StoreConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	TimeoutMS int           `mapstructure:"timeout_ms"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// Timeout 单次请求超时
func (c StoreConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// BreakerConfig 熔断器配置
type BreakerConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	ConsecutiveFailures int  `mapstructure:"consecutive_failures"`
	OpenSeconds         int  `mapstructure:"open_seconds"`
	HalfOpenRequests    int  `mapstructure:"half_open_requests"`
}

// CartConfig 购物车协调配置
type CartConfig struct {
	LoadRetry          RetryConfig `mapstructure:"load_retry"`
	TaxRate            string      `mapstructure:"tax_rate"`
	ZeroQuantityPolicy string      `mapstructure:"zero_quantity_policy"` // remove / reject
	RemoteClear        string      `mapstructure:"remote_clear"`         // sync / queue / off
}

// RetryConfig 加载重试配置
type RetryConfig struct {
	Attempts         int `mapstructure:"attempts"`
	InitialBackoffMS int `mapstructure:"initial_backoff_ms"`
	MaxBackoffMS     int `mapstructure:"max_backoff_ms"`
	AttemptTimeoutMS int `mapstructure:"attempt_timeout_ms"`
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	CacheTTLSeconds        int `mapstructure:"cache_ttl_seconds"`
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`
}

// RefreshInterval 后台刷新商品缓存的间隔，0 表示关闭
func (c CatalogConfig) RefreshInterval() time.Duration {
	if c.RefreshIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// SessionConfig 会话配置
type SessionConfig struct {
	Header     string `mapstructure:"header"`
	CookieName string `mapstructure:"cookie_name"`
	TTLHours   int    `mapstructure:"ttl_hours"`
}

// TTL 会话有效期
func (c SessionConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
	MaxRetry    int            `mapstructure:"max_retry"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// MockStoreConfig 内置模拟存储配置
type MockStoreConfig struct {
	Host     string         `mapstructure:"host"`
	Port     string         `mapstructure:"port"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	cfg, err := LoadFrom(viper.New(), ".", "../", "./etc")
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// LoadFrom 使用指定 viper 实例与搜索路径加载配置
func LoadFrom(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	setDefaults(v)

	v.SetEnvPrefix("SHOPLITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed", "error", err, "fallback", "env_or_defaults")
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "shoplite.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("store.base_url", "http://localhost:3000")
	v.SetDefault("store.timeout_ms", 5000)
	v.SetDefault("store.breaker.enabled", true)
	v.SetDefault("store.breaker.consecutive_failures", 5)
	v.SetDefault("store.breaker.open_seconds", 10)
	v.SetDefault("store.breaker.half_open_requests", 1)
	v.SetDefault("cart.load_retry.attempts", 3)
	v.SetDefault("cart.load_retry.initial_backoff_ms", 200)
	v.SetDefault("cart.load_retry.max_backoff_ms", 1000)
	v.SetDefault("cart.load_retry.attempt_timeout_ms", 3000)
	v.SetDefault("cart.tax_rate", "0.05")
	v.SetDefault("cart.zero_quantity_policy", "remove")
	v.SetDefault("cart.remote_clear", "sync")
	v.SetDefault("catalog.cache_ttl_seconds", 300)
	v.SetDefault("catalog.refresh_interval_seconds", 120)
	v.SetDefault("session.header", "X-Session-ID")
	v.SetDefault("session.cookie_name", "sid")
	v.SetDefault("session.ttl_hours", 168)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "shoplite")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{"default": 1})
	v.SetDefault("queue.max_retry", 5)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Accept-Language",
		"Authorization",
		"X-Requested-With",
		"X-Session-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("mockstore.host", "0.0.0.0")
	v.SetDefault("mockstore.port", "3000")
	v.SetDefault("mockstore.database.driver", "sqlite")
	v.SetDefault("mockstore.database.dsn", "./db/mockstore.db")
	v.SetDefault("mockstore.database.pool.max_open_conns", 1)
	v.SetDefault("mockstore.database.pool.max_idle_conns", 1)
	v.SetDefault("mockstore.database.pool.conn_max_lifetime_seconds", 0)
}

func (c *Config) normalize() {
	c.Store.BaseURL = strings.TrimRight(strings.TrimSpace(c.Store.BaseURL), "/")
	switch strings.ToLower(strings.TrimSpace(c.Cart.ZeroQuantityPolicy)) {
	case "reject":
		c.Cart.ZeroQuantityPolicy = "reject"
	default:
		c.Cart.ZeroQuantityPolicy = "remove"
	}
	switch strings.ToLower(strings.TrimSpace(c.Cart.RemoteClear)) {
	case "queue":
		c.Cart.RemoteClear = "queue"
	case "off":
		c.Cart.RemoteClear = "off"
	default:
		c.Cart.RemoteClear = "sync"
	}
	if strings.TrimSpace(c.Redis.Prefix) == "" {
		c.Redis.Prefix = "shoplite"
	}
	if strings.TrimSpace(c.Session.Header) == "" {
		c.Session.Header = "X-Session-ID"
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		c.Session.CookieName = "sid"
	}
}
