package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shoplite/internal/config"
	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/i18n"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig, sessionHeader string) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-Locale",
			requestIDHeader,
			sessionHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")
	exposeHeaders := strings.Join([]string{requestIDHeader, sessionHeader}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", exposeHeaders)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"session_kind", sessionKind(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// SessionMiddleware 会话中间件：从请求头或 Cookie 读取会话ID，缺失或非法时签发新ID
func SessionMiddleware(manager *session.Manager, cfg config.SessionConfig) gin.HandlerFunc {
	header := strings.TrimSpace(cfg.Header)
	if header == "" {
		header = constants.SessionHeader
	}
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = constants.SessionCookie
	}
	maxAge := int(cfg.TTL() / time.Second)

	return func(c *gin.Context) {
		if manager == nil {
			logger.Errorw("session_manager_unavailable")
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.session_failed"))
			c.Abort()
			return
		}
		sid := strings.TrimSpace(c.GetHeader(header))
		if sid == "" {
			if value, err := c.Cookie(cookieName); err == nil {
				sid = strings.TrimSpace(value)
			}
		}
		if !session.ValidID(sid) {
			sid = session.NewID()
		}

		sess, err := manager.Load(c.Request.Context(), sid)
		if err != nil {
			logger.Errorw("session_load_failed", "request_id", getRequestID(c), "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.session_failed"))
			c.Abort()
			return
		}
		c.Set(constants.SessionContextKey, sess)
		c.Writer.Header().Set(header, sid)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sid, maxAge, "/", "", false, true)
		c.Next()
	}
}

func sessionKind(c *gin.Context) string {
	value, ok := c.Get(constants.SessionContextKey)
	if !ok {
		return constants.SessionKindNone
	}
	if sess, ok := value.(*session.Session); ok && sess != nil {
		return sess.Kind()
	}
	return constants.SessionKindNone
}
