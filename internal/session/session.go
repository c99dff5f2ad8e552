package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/models"

	"github.com/google/uuid"
)

// 会话存储命名空间
const (
	NamespaceIdentity = "session"
	NamespaceFilters  = "filters"
	NamespaceCart     = "cart"
)

var (
	// ErrInvalidSessionID 会话ID不合法
	ErrInvalidSessionID = errors.New("invalid session id")
	// ErrInvalidIdentity 身份值不合法（为空或与访客标记冲突）
	ErrInvalidIdentity = errors.New("invalid session identity")
)

const maxSessionIDLength = 64

// Manager 会话管理器
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager 创建会话管理器
func NewManager(store Store, ttl time.Duration) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store, ttl: ttl}
}

// Store 返回底层存储
func (m *Manager) Store() Store {
	return m.store
}

// TTL 会话有效期
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// NewID 生成新的会话ID
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验客户端传入的会话ID
func ValidID(sid string) bool {
	sid = strings.TrimSpace(sid)
	if sid == "" || len(sid) > maxSessionIDLength {
		return false
	}
	for _, r := range sid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Key 拼接命名空间键
func Key(namespace, sid string) string {
	return namespace + ":" + sid
}

// Load 读取会话，存在时顺延有效期
func (m *Manager) Load(ctx context.Context, sid string) (*Session, error) {
	if !ValidID(sid) {
		return nil, ErrInvalidSessionID
	}
	s := &Session{id: sid, manager: m}
	value, ok, err := m.store.Get(ctx, Key(NamespaceIdentity, sid))
	if err != nil {
		return nil, err
	}
	if ok {
		s.value = value
		s.present = true
		if err := m.store.Touch(ctx, Key(NamespaceIdentity, sid), m.ttl); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Session 单个会话；身份只有一个存储值，是否登录/访客均由其推导
type Session struct {
	id      string
	value   string
	present bool
	manager *Manager
}

// ID 会话ID
func (s *Session) ID() string {
	return s.id
}

// SetIdentity 设置登录用户
func (s *Session) SetIdentity(ctx context.Context, userID models.RecordID) error {
	value := strings.TrimSpace(userID.String())
	if value == "" || value == constants.SessionGuestSentinel {
		return ErrInvalidIdentity
	}
	return s.write(ctx, value)
}

// SetGuest 设置为访客
func (s *Session) SetGuest(ctx context.Context) error {
	return s.write(ctx, constants.SessionGuestSentinel)
}

// Identity 返回原始身份值
func (s *Session) Identity() (string, bool) {
	return s.value, s.present
}

// UserID 已登录时返回用户ID
func (s *Session) UserID() (models.RecordID, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return models.RecordID(s.value), true
}

// IsAuthenticated 存在且不是访客标记
func (s *Session) IsAuthenticated() bool {
	return s.present && s.value != constants.SessionGuestSentinel
}

// IsGuest 等于访客标记
func (s *Session) IsGuest() bool {
	return s.present && s.value == constants.SessionGuestSentinel
}

// Kind 会话类型
func (s *Session) Kind() string {
	switch {
	case s.IsGuest():
		return constants.SessionKindGuest
	case s.IsAuthenticated():
		return constants.SessionKindUser
	default:
		return constants.SessionKindNone
	}
}

// Clear 清除身份以及该会话下的筛选与购物车状态
func (s *Session) Clear(ctx context.Context) error {
	if err := s.manager.store.Delete(ctx,
		Key(NamespaceIdentity, s.id),
		Key(NamespaceFilters, s.id),
		Key(NamespaceCart, s.id),
	); err != nil {
		return err
	}
	s.value = ""
	s.present = false
	return nil
}

// LoadJSON 读取会话命名空间下的 JSON 数据
func (s *Session) LoadJSON(ctx context.Context, namespace string, dest interface{}) (bool, error) {
	raw, ok, err := s.manager.store.Get(ctx, Key(namespace, s.id))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SaveJSON 写入会话命名空间下的 JSON 数据
func (s *Session) SaveJSON(ctx context.Context, namespace string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.manager.store.Set(ctx, Key(namespace, s.id), string(payload), s.manager.ttl)
}

// DeleteJSON 删除会话命名空间下的数据
func (s *Session) DeleteJSON(ctx context.Context, namespace string) error {
	return s.manager.store.Delete(ctx, Key(namespace, s.id))
}

func (s *Session) write(ctx context.Context, value string) error {
	if err := s.manager.store.Set(ctx, Key(NamespaceIdentity, s.id), value, s.manager.ttl); err != nil {
		return err
	}
	s.value = value
	s.present = true
	return nil
}
