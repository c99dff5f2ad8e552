package public

import (
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/i18n"
	"github.com/shoplite/internal/service"

	"github.com/gin-gonic/gin"
)

// FilterRequest 更新筛选条件请求
type FilterRequest struct {
	Categories []string `json:"categories"`
	Sort       string   `json:"sort"`
}

// GetFilters 获取会话筛选条件
func (h *Handler) GetFilters(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	selection, err := h.ProductService.Selection(c.Request.Context(), sess)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.session_failed")
		return
	}
	response.Success(c, selection)
}

// UpdateFilters 保存会话筛选条件
func (h *Handler) UpdateFilters(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	selection, err := service.NewFilterSelection(req.Categories, req.Sort)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeBadRequest, "error.bad_request")
		return
	}
	if err := h.ProductService.SaveSelection(c.Request.Context(), sess, selection); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.session_failed")
		return
	}
	response.Success(c, selection)
}

// ResetFilters 重置筛选条件
func (h *Handler) ResetFilters(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	if err := h.ProductService.ResetSelection(c.Request.Context(), sess); err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.session_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.filters_reset"), service.FilterSelection{
		Categories: []string{},
		Sort:       service.SortModeDefault,
	})
}
