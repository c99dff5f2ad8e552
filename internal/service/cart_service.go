package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/gateway"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/queue"
	"github.com/shoplite/internal/session"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoadRetryPolicy 购物车加载重试策略
type LoadRetryPolicy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	AttemptTimeout time.Duration
}

// CartServiceOptions 购物车服务参数
type CartServiceOptions struct {
	Retry       LoadRetryPolicy
	TaxRate     decimal.Decimal
	RemoteClear string
	Queue       *queue.Client
}

// CartService 购物车协调服务
type CartService struct {
	users       UserGateway
	products    *ProductService
	retry       LoadRetryPolicy
	taxRate     decimal.Decimal
	remoteClear string
	queueClient *queue.Client
	now         func() time.Time
}

// Receipt 模拟结算回执
type Receipt struct {
	Number    string      `json:"number"`
	UserID    string      `json:"user_id"`
	Items     []CartLine  `json:"items"`
	Summary   CartSummary `json:"summary"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewCartService 创建购物车服务
func NewCartService(users UserGateway, products *ProductService, opts CartServiceOptions) *CartService {
	retry := opts.Retry
	if retry.Attempts <= 0 {
		retry.Attempts = 3
	}
	if retry.InitialBackoff <= 0 {
		retry.InitialBackoff = 200 * time.Millisecond
	}
	if retry.MaxBackoff < retry.InitialBackoff {
		retry.MaxBackoff = retry.InitialBackoff
	}
	if retry.AttemptTimeout <= 0 {
		retry.AttemptTimeout = 3 * time.Second
	}
	remoteClear := opts.RemoteClear
	if remoteClear == "" {
		remoteClear = constants.RemoteClearSync
	}
	return &CartService{
		users:       users,
		products:    products,
		retry:       retry,
		taxRate:     opts.TaxRate,
		remoteClear: remoteClear,
		queueClient: opts.Queue,
		now:         time.Now,
	}
}

// State 返回会话当前的购物车快照，未加载过则为空闲状态
func (s *CartService) State(ctx context.Context, sess *session.Session) *CartState {
	if state := loadCartState(ctx, sess); state != nil {
		return state
	}
	return newIdleCartState(s.taxRate)
}

// Load 加载购物车
// 未登录或访客直接返回空购物车；加载失败返回空购物车、failed 状态并标记可重试，不返回错误
func (s *CartService) Load(ctx context.Context, sess *session.Session) *CartState {
	userID, ok := sess.UserID()
	if !ok {
		state := s.settledState(nil)
		saveCartState(ctx, sess, state)
		return state
	}

	s.markInFlight(ctx, sess)
	items, err := s.loadWithRetry(ctx, userID)
	if err != nil {
		logger.Warnw("cart_load_failed", "user_id", userID.String(), "error", err)
		state := &CartState{
			Items:     []CartLine{},
			Status:    constants.CartStatusFailed,
			Error:     err.Error(),
			Retryable: true,
			Summary:   summarizeCart(nil, s.taxRate),
			UpdatedAt: s.now(),
		}
		saveCartState(ctx, sess, state)
		return state
	}
	state := s.settledState(items)
	saveCartState(ctx, sess, state)
	return state
}

// AddItem 加入购物车：已存在数量加一，否则追加
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, productID models.ProductID) (*CartState, error) {
	if err := validateCartTarget(sess, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sess, "add", s.productExists(productID), func(record *cartRecord) {
		record.add(productID)
	})
}

// RemoveItem 从购物车移除商品
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, productID models.ProductID) (*CartState, error) {
	if err := validateCartTarget(sess, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sess, "remove", nil, func(record *cartRecord) {
		record.remove(productID)
	})
}

// UpdateQuantity 设置商品数量，不存在则追加；数量原样写入
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID models.ProductID, quantity int) (*CartState, error) {
	if err := validateCartTarget(sess, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sess, "update_quantity", s.productExists(productID), func(record *cartRecord) {
		record.setQuantity(productID, quantity)
	})
}

// Clear 本地清空购物车，再按配置尽力清空远端记录（失败只记录日志）
func (s *CartService) Clear(ctx context.Context, sess *session.Session) *CartState {
	state := s.settledState(nil)
	saveCartState(ctx, sess, state)

	userID, ok := sess.UserID()
	if !ok {
		return state
	}
	s.clearRemote(ctx, userID, "")
	return state
}

// Checkout 模拟结算：生成回执后清空购物车
func (s *CartService) Checkout(ctx context.Context, sess *session.Session) (*Receipt, *CartState, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, nil, ErrAuthRequired
	}
	current := s.Load(ctx, sess)
	if current.Status == constants.CartStatusFailed {
		return nil, current, fmt.Errorf("%w: %s", ErrCartLoadFailed, current.Error)
	}
	if len(current.Items) == 0 {
		return nil, current, ErrCartEmpty
	}

	receipt := &Receipt{
		Number:    uuid.NewString(),
		UserID:    userID.String(),
		Items:     append([]CartLine{}, current.Items...),
		Summary:   current.Summary,
		CreatedAt: s.now(),
	}
	state := s.settledState(nil)
	saveCartState(ctx, sess, state)
	s.clearRemote(ctx, userID, receipt.Number)
	logger.Infow("cart_checkout_completed",
		"user_id", receipt.UserID,
		"receipt_no", receipt.Number,
		"item_count", receipt.Summary.ItemCount,
		"total", receipt.Summary.Total.String(),
	)
	return receipt, state, nil
}

// ClearRemoteCart 将远端用户记录的两个购物车字段清空（供异步任务调用）
func (s *CartService) ClearRemoteCart(ctx context.Context, userID models.RecordID) error {
	if userID.IsZero() {
		return ErrAuthRequired
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID.String())
		}
		return classifyRemoteError(err)
	}
	var record cartRecord
	updated := user.Clone()
	record.applyTo(updated)
	if _, err := s.users.Replace(ctx, updated); err != nil {
		return classifyRemoteError(err)
	}
	return nil
}

func (s *CartService) clearRemote(ctx context.Context, userID models.RecordID, receiptNo string) {
	switch s.remoteClear {
	case constants.RemoteClearOff:
		return
	case constants.RemoteClearQueue:
		if s.queueClient.Enabled() {
			err := s.queueClient.EnqueueCartRemoteClear(queue.CartRemoteClearPayload{
				UserID:    userID.String(),
				ReceiptNo: receiptNo,
			})
			if err == nil {
				return
			}
			logger.Warnw("cart_remote_clear_enqueue_failed", "user_id", userID.String(), "error", err)
		}
	}
	if err := s.ClearRemoteCart(ctx, userID); err != nil {
		logger.Warnw("cart_remote_clear_failed", "user_id", userID.String(), "error", err)
	}
}

// mutate 读-改-写：读取远端用户记录，修改规范模型，整体写回，再按写回结果重建购物车
// 进入 in_flight 之后的任何失败（包括 precheck）都经 fail 落为 failed 状态
func (s *CartService) mutate(ctx context.Context, sess *session.Session, op string, precheck func(context.Context) error, apply func(*cartRecord)) (*CartState, error) {
	userID, ok := sess.UserID()
	if !ok {
		return nil, ErrAuthRequired
	}
	previous := s.State(ctx, sess)
	s.markInFlight(ctx, sess)

	if precheck != nil {
		if err := precheck(ctx); err != nil {
			return s.fail(ctx, sess, previous, op, err)
		}
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return s.fail(ctx, sess, previous, op, err)
	}
	record, _ := cartRecordFromUser(user)
	apply(&record)
	updated := user.Clone()
	record.applyTo(updated)

	saved, err := s.users.Replace(ctx, updated)
	if err != nil {
		return s.fail(ctx, sess, previous, op, err)
	}
	confirmed, _ := cartRecordFromUser(saved)
	items, err := s.resolveItems(ctx, confirmed)
	if err != nil {
		return s.fail(ctx, sess, previous, op, err)
	}
	state := s.settledState(items)
	saveCartState(ctx, sess, state)
	logger.Debugw("cart_mutation_settled", "op", op, "user_id", userID.String(), "item_count", state.Summary.ItemCount)
	return state, nil
}

// fail 保留上一次成功的购物车，标记 failed 并记录错误消息
func (s *CartService) fail(ctx context.Context, sess *session.Session, previous *CartState, op string, err error) (*CartState, error) {
	classified := err
	if !isClassifiedCartError(err) {
		classified = classifyRemoteError(err)
	}
	state := previous.clone()
	state.Status = constants.CartStatusFailed
	state.Error = err.Error()
	state.Retryable = errors.Is(classified, ErrStoreUnavailable)
	state.UpdatedAt = s.now()
	saveCartState(ctx, sess, state)
	logger.Warnw("cart_mutation_failed", "op", op, "session_id", sess.ID(), "error", err)
	return state, classified
}

func (s *CartService) markInFlight(ctx context.Context, sess *session.Session) {
	state := s.State(ctx, sess).clone()
	state.Status = constants.CartStatusInFlight
	state.UpdatedAt = s.now()
	saveCartState(ctx, sess, state)
}

func (s *CartService) settledState(items []CartLine) *CartState {
	if items == nil {
		items = []CartLine{}
	}
	return &CartState{
		Items:     items,
		Status:    constants.CartStatusSettled,
		Summary:   summarizeCart(items, s.taxRate),
		UpdatedAt: s.now(),
	}
}

// validateCartTarget 访客与未登录会话不可修改购物车
func validateCartTarget(sess *session.Session, productID models.ProductID) error {
	if _, ok := sess.UserID(); !ok {
		return ErrAuthRequired
	}
	if productID <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

// productExists 写入前确认商品存在
func (s *CartService) productExists(productID models.ProductID) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.products.Get(ctx, productID)
		return err
	}
}

// isClassifiedCartError 已是服务层错误的不再按远端错误归类
func isClassifiedCartError(err error) bool {
	for _, target := range []error{ErrStoreUnavailable, ErrStoreRequestFailed, ErrProductNotFound, ErrInvalidProduct} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// loadWithRetry 单次加载操作：带指数退避与单次超时；旧格式记录每次加载最多补写一次
func (s *CartService) loadWithRetry(ctx context.Context, userID models.RecordID) ([]CartLine, error) {
	var items []CartLine
	migrated := false
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.retry.AttemptTimeout)
		defer cancel()

		user, err := s.users.GetByID(attemptCtx, userID)
		if err != nil {
			return retryableOrPermanent(classifyRemoteError(err))
		}
		record, legacy := cartRecordFromUser(user)
		if legacy && !migrated {
			migrated = true
			updated := user.Clone()
			record.applyTo(updated)
			if _, err := s.users.Replace(attemptCtx, updated); err != nil {
				logger.Warnw("cart_legacy_migration_failed", "user_id", userID.String(), "error", err)
			} else {
				logger.Infow("cart_legacy_migrated", "user_id", userID.String(), "item_count", len(record.entries))
			}
		}
		resolved, err := s.resolveItems(attemptCtx, record)
		if err != nil {
			return retryableOrPermanent(err)
		}
		items = resolved
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retry.InitialBackoff
	policy.MaxInterval = s.retry.MaxBackoff
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(s.retry.Attempts-1)), ctx)

	err := backoff.RetryNotify(operation, b, func(err error, wait time.Duration) {
		logger.Warnw("cart_load_retry", "user_id", userID.String(), "wait", wait.String(), "error", err)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// resolveItems 将规范模型解析为带商品快照的购物车行；商品不存在的条目跳过
func (s *CartService) resolveItems(ctx context.Context, record cartRecord) ([]CartLine, error) {
	items := make([]CartLine, 0, len(record.entries))
	for _, entry := range record.entries {
		product, err := s.products.Get(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInvalidProduct) {
				logger.Warnw("cart_product_missing", "product_id", entry.ProductID.String())
				continue
			}
			return nil, err
		}
		items = append(items, buildCartLine(*product, entry.Quantity))
	}
	return items, nil
}

// retryableOrPermanent 仅远端不可用时重试
func retryableOrPermanent(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return backoff.Permanent(err)
}
