package public

import (
	"errors"

	"github.com/shoplite/internal/http/response"
	"github.com/shoplite/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func matchMappedError(err error, rules []mappedHandlerError) (mappedHandlerError, bool) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule, true
		}
	}
	return mappedHandlerError{}, false
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	if rule, ok := matchMappedError(err, rules); ok {
		respondError(c, rule.code, rule.key, nil)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

// respondCartError 购物车失败时同时返回失败后的购物车状态
func respondCartError(c *gin.Context, err error, state *service.CartState) {
	var data gin.H
	if state != nil {
		data = gin.H{"cart": state}
	}
	if rule, ok := matchMappedError(err, cartErrorRules); ok {
		respondErrorWithData(c, rule.code, rule.key, data, nil)
		return
	}
	respondErrorWithData(c, response.CodeInternal, "error.cart_update_failed", data, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var storeErrorRules = []mappedHandlerError{
	{target: service.ErrStoreUnavailable, code: response.CodeServiceUnavailable, key: "error.store_unavailable"},
	{target: service.ErrStoreRequestFailed, code: response.CodeBadGateway, key: "error.store_request_failed"},
	{target: service.ErrSessionStateFailure, code: response.CodeInternal, key: "error.session_failed"},
}

var authErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}, storeErrorRules)

var productErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.product_id_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidCategory, code: response.CodeBadRequest, key: "error.category_invalid"},
	{target: service.ErrInvalidSortMode, code: response.CodeBadRequest, key: "error.sort_mode_invalid"},
}, storeErrorRules)

var cartErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrAuthRequired, code: response.CodeUnauthorized, key: "error.login_required"},
	{target: service.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.product_id_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCartLoadFailed, code: response.CodeServiceUnavailable, key: "error.cart_load_failed"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}, storeErrorRules)
