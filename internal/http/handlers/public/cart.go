package public

import (
	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/i18n"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID models.ProductID `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CheckoutResponse 结算响应
type CheckoutResponse struct {
	Receipt *service.Receipt   `json:"receipt"`
	Cart    *service.CartState `json:"cart"`
}

// GetCart 加载购物车（带重试）；失败时返回空购物车并标记可重试
func (h *Handler) GetCart(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.Load(c.Request.Context(), sess))
}

// RetryCart 手动重新加载购物车
func (h *Handler) RetryCart(c *gin.Context) {
	h.GetCart(c)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	state, err := h.CartService.AddItem(c.Request.Context(), sess, req.ProductID)
	if err != nil {
		respondCartError(c, err, state)
		return
	}
	response.Success(c, state)
}

// UpdateCartItem 修改商品数量；数量小于 1 按 zero_quantity_policy 处理
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	productID, err := models.ParseProductID(c.Param("product_id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
		return
	}

	var state *service.CartState
	if *req.Quantity < 1 {
		if h.Config.Cart.ZeroQuantityPolicy == constants.ZeroQuantityReject {
			respondError(c, response.CodeBadRequest, "error.quantity_invalid", nil)
			return
		}
		state, err = h.CartService.RemoveItem(c.Request.Context(), sess, productID)
	} else {
		state, err = h.CartService.UpdateQuantity(c.Request.Context(), sess, productID, *req.Quantity)
	}
	if err != nil {
		respondCartError(c, err, state)
		return
	}
	response.Success(c, state)
}

// DeleteCartItem 移除购物车商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	productID, err := models.ParseProductID(c.Param("product_id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	state, err := h.CartService.RemoveItem(c.Request.Context(), sess, productID)
	if err != nil {
		respondCartError(c, err, state)
		return
	}
	response.Success(c, state)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	state := h.CartService.Clear(c.Request.Context(), sess)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.cart_cleared"), state)
}

// Checkout 模拟结算
func (h *Handler) Checkout(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	receipt, state, err := h.CartService.Checkout(c.Request.Context(), sess)
	if err != nil {
		respondCartError(c, err, state)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.checkout_completed"), CheckoutResponse{
		Receipt: receipt,
		Cart:    state,
	})
}
