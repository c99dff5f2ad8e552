package service

import (
	"context"
	"time"

	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/logger"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/session"

	"github.com/shopspring/decimal"
)

// CartLine 购物车行（商品快照 + 数量）
type CartLine struct {
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal models.Money   `json:"line_total"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
	TaxRate   string       `json:"tax_rate"`
	Tax       models.Money `json:"tax"`
	Total     models.Money `json:"total"`
}

// CartState 会话内的购物车快照
type CartState struct {
	Items     []CartLine  `json:"items"`
	Status    string      `json:"status"`
	Error     string      `json:"error,omitempty"`
	Retryable bool        `json:"retryable"`
	Summary   CartSummary `json:"summary"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newIdleCartState(taxRate decimal.Decimal) *CartState {
	return &CartState{
		Items:   []CartLine{},
		Status:  constants.CartStatusIdle,
		Summary: summarizeCart(nil, taxRate),
	}
}

// clone 拷贝切片，避免修改已保存的快照
func (s *CartState) clone() *CartState {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.Items = append([]CartLine{}, s.Items...)
	return &cloned
}

// ItemCount 商品件数合计
func (s *CartState) ItemCount() int {
	if s == nil {
		return 0
	}
	return s.Summary.ItemCount
}

func buildCartLine(product models.Product, quantity int) CartLine {
	return CartLine{
		Product:   product,
		Quantity:  quantity,
		LineTotal: product.Price.Times(quantity),
	}
}

// summarizeCart 计算件数、小计、税额与合计
func summarizeCart(items []CartLine, taxRate decimal.Decimal) CartSummary {
	count := 0
	subtotal := models.NewMoneyFromDecimal(decimal.Zero)
	for _, item := range items {
		count += item.Quantity
		subtotal = subtotal.Plus(item.LineTotal)
	}
	tax := models.NewMoneyFromDecimal(subtotal.Decimal.Mul(taxRate))
	return CartSummary{
		ItemCount: count,
		Subtotal:  subtotal,
		TaxRate:   taxRate.String(),
		Tax:       tax,
		Total:     subtotal.Plus(tax),
	}
}

// loadCartState 读取会话中的购物车快照，不存在返回 nil
func loadCartState(ctx context.Context, sess *session.Session) *CartState {
	var state CartState
	ok, err := sess.LoadJSON(ctx, session.NamespaceCart, &state)
	if err != nil {
		logger.Warnw("cart_state_load_failed", "session_id", sess.ID(), "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	if state.Items == nil {
		state.Items = []CartLine{}
	}
	return &state
}

// saveCartState 保存快照；失败仅记录日志
func saveCartState(ctx context.Context, sess *session.Session, state *CartState) {
	if state == nil {
		return
	}
	if err := sess.SaveJSON(ctx, session.NamespaceCart, state); err != nil {
		logger.Warnw("cart_state_save_failed", "session_id", sess.ID(), "status", state.Status, "error", err)
	}
}
