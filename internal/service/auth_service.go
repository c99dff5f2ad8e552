package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/session"
)

// AuthService 登录/访客/登出
// 凭据直接按明文查询远端用户集合
type AuthService struct {
	users UserGateway
}

// NewAuthService 创建认证服务实例
func NewAuthService(users UserGateway) *AuthService {
	return &AuthService{users: users}
}

// Login 用户登录，成功后写入会话身份并重置购物车快照
func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	users, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, classifyRemoteError(err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}
	user := users[0]
	if user.ID.IsZero() {
		return nil, ErrInvalidCredentials
	}
	if err := sess.SetIdentity(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	s.resetSessionState(ctx, sess)
	logger.Infow("auth_login_succeeded", "user_id", user.ID.String(), "session_id", sess.ID())
	return &user, nil
}

// LoginAsGuest 以访客身份浏览
func (s *AuthService) LoginAsGuest(ctx context.Context, sess *session.Session) error {
	if err := sess.SetGuest(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	s.resetSessionState(ctx, sess)
	return nil
}

// Logout 登出并清除会话下所有状态
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := sess.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStateFailure, err)
	}
	return nil
}

// CurrentUser 获取当前登录用户，未登录返回 nil
func (s *AuthService) CurrentUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID.String())
		}
		return nil, classifyRemoteError(err)
	}
	return user, nil
}

// resetSessionState 身份切换后丢弃旧的购物车快照
func (s *AuthService) resetSessionState(ctx context.Context, sess *session.Session) {
	if err := sess.DeleteJSON(ctx, session.NamespaceCart); err != nil {
		logger.Warnw("session_cart_reset_failed", "session_id", sess.ID(), "error", err)
	}
}
