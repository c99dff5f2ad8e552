package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteUnavailable 网络/传输失败或响应无法解析
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	// ErrRemoteFailure 远端返回非成功状态
	ErrRemoteFailure = errors.New("remote store request failed")
	// ErrNotFound 单个实体不存在（同时视为 ErrRemoteFailure）
	ErrNotFound = errors.New("remote record not found")
)

// RemoteError 远端非成功响应，携带可读消息
type RemoteError struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// Unwrap 支持 errors.Is 对 Kind 与 ErrRemoteFailure 的判断
func (e *RemoteError) Unwrap() []error {
	if e.Kind == nil || e.Kind == ErrRemoteFailure {
		return []error{ErrRemoteFailure}
	}
	return []error{e.Kind, ErrRemoteFailure}
}

// IsUnavailable 是否为传输层不可用（可重试）
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsNotFound 是否为实体不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func unavailable(message string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, message)
	}
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, message, cause)
}
