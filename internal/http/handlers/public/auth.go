package public

import (
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/i18n"
	"github.com/shoplite/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserProfile 当前用户展示字段
type UserProfile struct {
	ID   models.RecordID `json:"id"`
	Name string          `json:"name"`
}

// MeResponse 会话身份响应
type MeResponse struct {
	SessionID string       `json:"session_id"`
	Kind      string       `json:"kind"`
	User      *UserProfile `json:"user"`
}

func toUserProfile(user *models.User) *UserProfile {
	if user == nil {
		return nil
	}
	return &UserProfile{ID: user.ID, Name: user.Name}
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.AuthService.Login(c.Request.Context(), sess, req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, MeResponse{
		SessionID: sess.ID(),
		Kind:      sess.Kind(),
		User:      toUserProfile(user),
	})
}

// LoginAsGuest 以访客身份浏览
func (h *Handler) LoginAsGuest(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	if err := h.AuthService.LoginAsGuest(c.Request.Context(), sess); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, MeResponse{SessionID: sess.ID(), Kind: sess.Kind()})
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(c.Request.Context(), sess); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.logged_out"), MeResponse{
		SessionID: sess.ID(),
		Kind:      sess.Kind(),
	})
}

// GetMe 获取会话身份与当前用户
func (h *Handler) GetMe(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	user, err := h.AuthService.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, MeResponse{
		SessionID: sess.ID(),
		Kind:      sess.Kind(),
		User:      toUserProfile(user),
	})
}
