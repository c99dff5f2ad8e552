package shared

import (
	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/session"

	"github.com/gin-gonic/gin"
)

// GetSession 从上下文读取会话，缺失时统一返回错误响应。
func GetSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(constants.SessionContextKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.session_invalid", nil)
		return nil, false
	}
	sess, ok := value.(*session.Session)
	if !ok || sess == nil {
		RespondError(c, response.CodeInternal, "error.session_failed", nil)
		return nil, false
	}
	return sess, true
}
