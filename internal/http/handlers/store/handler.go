package store

import (
	"errors"
	"io"
	"net/http"

	handlershared "github.com/shoplite/internal/http/handlers/shared"
	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/service"

	"github.com/gin-gonic/gin"
)

const maxDocumentBytes = 1 << 20

// Handler 模拟 REST 存储接口（json-server 兼容：原样 JSON 与真实 HTTP 状态码）
type Handler struct {
	store *service.StoreService
}

// New 创建模拟存储处理器
func New(store *service.StoreService) *Handler {
	return &Handler{store: store}
}

// Register 注册集合路由
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/:collection", h.List)
	r.POST("/:collection", h.Create)
	r.GET("/:collection/:id", h.Get)
	r.PUT("/:collection/:id", h.Replace)
	r.PATCH("/:collection/:id", h.methodNotAllowed)
	r.DELETE("/:collection/:id", h.methodNotAllowed)
}

// List 列出集合文档
func (h *Handler) List(c *gin.Context) {
	docs, err := h.store.List(c.Param("collection"), c.Request.URL.Query())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, docs)
}

// Get 获取单个文档
func (h *Handler) Get(c *gin.Context) {
	doc, err := h.store.Get(c.Param("collection"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, doc)
}

// Replace 整体覆盖文档
func (h *Handler) Replace(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	doc, err := h.store.Replace(c.Param("collection"), c.Param("id"), body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Raw(c, http.StatusOK, doc)
}

// Create 新增文档
func (h *Handler) Create(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	doc, err := h.store.Create(c.Param("collection"), body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Raw(c, http.StatusCreated, doc)
}

func (h *Handler) methodNotAllowed(c *gin.Context) {
	response.RawError(c, http.StatusMethodNotAllowed, "method not allowed")
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentBytes))
	if err != nil {
		response.RawError(c, http.StatusBadRequest, "invalid body")
		return nil, false
	}
	return body, true
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCollection), errors.Is(err, service.ErrDocumentNotFound):
		response.Raw(c, http.StatusNotFound, gin.H{})
	case errors.Is(err, service.ErrCollectionReadOnly):
		response.RawError(c, http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, service.ErrDocumentConflict):
		response.RawError(c, http.StatusConflict, err.Error())
	case service.IsStoreClientError(err):
		response.RawError(c, http.StatusBadRequest, err.Error())
	default:
		handlershared.RequestLog(c).Errorw("store_request_failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		response.RawError(c, http.StatusInternalServerError, "internal error")
	}
}
