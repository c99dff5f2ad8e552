package public

import (
	"github.com/shoplite/internal/constants"
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/models"
	"github.com/shoplite/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductView 商品展示数据
type ProductView struct {
	models.Product
	HasDiscount bool `json:"has_discount"`
}

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	Items     []ProductView           `json:"items"`
	Total     int                     `json:"total"`
	Selection service.FilterSelection `json:"selection"`
}

func toProductView(product models.Product) ProductView {
	return ProductView{Product: product, HasDiscount: product.HasDiscount()}
}

// GetProducts 获取商品列表
// 请求携带 category 或 sort 时使用请求条件，否则使用会话中保存的筛选条件
func (h *Handler) GetProducts(c *gin.Context) {
	selection, ok := h.resolveSelection(c)
	if !ok {
		return
	}
	products, err := h.ProductService.Browse(c.Request.Context(), selection)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	items := make([]ProductView, 0, len(products))
	for _, product := range products {
		items = append(items, toProductView(product))
	}
	response.Success(c, ProductListResponse{
		Items:     items,
		Total:     len(items),
		Selection: selection,
	})
}

func (h *Handler) resolveSelection(c *gin.Context) (service.FilterSelection, bool) {
	categories, hasCategory := c.GetQueryArray("category")
	sortRaw, hasSort := c.GetQuery("sort")
	if hasCategory || hasSort {
		selection, err := service.NewFilterSelection(categories, sortRaw)
		if err != nil {
			respondWithMappedError(c, err, productErrorRules, response.CodeBadRequest, "error.bad_request")
			return service.FilterSelection{}, false
		}
		return selection, true
	}
	sess, ok := getSession(c)
	if !ok {
		return service.FilterSelection{}, false
	}
	selection, err := h.ProductService.Selection(c.Request.Context(), sess)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.session_failed")
		return service.FilterSelection{}, false
	}
	return selection, true
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := models.ParseProductID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	product, err := h.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, toProductView(*product))
}

// GetCategories 获取固定分类集合
func (h *Handler) GetCategories(c *gin.Context) {
	response.Success(c, constants.ProductCategories)
}

// GetSortModes 获取支持的排序方式
func (h *Handler) GetSortModes(c *gin.Context) {
	response.Success(c, service.SortModes())
}
