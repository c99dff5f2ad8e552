package response

import (
	"errors"

	"github.com/shoplite/internal/gateway"

	"github.com/gin-gonic/gin"
)

// AppError 业务错误包装，附带远端商店错误的状态码与可重试标记
type AppError struct {
	Code         int
	Message      string
	Err          error
	RemoteStatus int
	Retryable    bool
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// LogFields 结构化日志字段，远端信息仅在存在时输出
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{"code", e.Code, "message", e.Message}
	if e.RemoteStatus > 0 {
		fields = append(fields, "remote_status", e.RemoteStatus)
	}
	if e.Retryable {
		fields = append(fields, "retryable", true)
	}
	if e.Err != nil {
		fields = append(fields, "error", e.Err)
	}
	return fields
}

// WrapError 包装错误；err 链上有 gateway.RemoteError 时记录其状态码
func WrapError(code int, message string, err error) *AppError {
	appErr := &AppError{
		Code:      code,
		Message:   message,
		Err:       err,
		Retryable: gateway.IsUnavailable(err),
	}
	var remote *gateway.RemoteError
	if errors.As(err, &remote) {
		appErr.RemoteStatus = remote.StatusCode
	}
	return appErr
}

// AppErrorResponse 按 AppError 输出错误响应
func AppErrorResponse(c *gin.Context, appErr *AppError, data interface{}) {
	if appErr == nil {
		return
	}
	ErrorWithData(c, appErr.Code, appErr.Message, data)
}
