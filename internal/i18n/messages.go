package i18n

var enUSMessages = map[string]string{
	"error.bad_request":            "Invalid request parameters",
	"error.unauthorized":           "Please log in first",
	"error.login_required":         "Log in with a user account to use the cart",
	"error.invalid_credentials":    "Incorrect username or password",
	"error.login_too_many":         "Too many login attempts, please retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiting is unavailable, please retry later",
	"error.too_many_requests":      "Too many attempts, please try again later",
	"error.not_found":              "Resource not found",
	"error.internal":               "Internal server error",
	"error.session_invalid":        "Session is invalid",
	"error.session_failed":         "Could not access session state",
	"error.product_id_invalid":     "Invalid product id",
	"error.product_not_found":      "Product not found",
	"error.product_fetch_failed":   "Could not fetch products",
	"error.category_invalid":       "Unknown category",
	"error.sort_mode_invalid":      "Unknown sort mode",
	"error.quantity_invalid":       "Quantity must be at least 1",
	"error.cart_empty":             "Your cart is empty",
	"error.cart_load_failed":       "Could not load cart",
	"error.cart_update_failed":     "Could not update cart",
	"error.store_unavailable":      "The data store is unreachable, please retry",
	"error.store_request_failed":   "The data store rejected the request",
	"error.user_not_found":         "User not found",
	"error.user_fetch_failed":      "Could not fetch user",
	"error.collection_unknown":     "Unknown collection",
	"error.collection_read_only":   "Collection is read-only",
	"error.document_invalid":       "Invalid document",
	"error.document_conflict":      "Document already exists",
	"message.logged_out":           "Logged out",
	"message.cart_cleared":         "Cart cleared",
	"message.checkout_completed":   "Checkout completed",
	"message.filters_reset":        "Filters reset",
}

var zhCNMessages = map[string]string{
	"error.bad_request":            "请求参数错误",
	"error.unauthorized":           "请先登录",
	"error.login_required":         "请使用用户账号登录后使用购物车",
	"error.invalid_credentials":    "用户名或密码错误",
	"error.login_too_many":         "登录尝试过于频繁，请 %d 秒后重试",
	"error.rate_limit_unavailable": "限流服务不可用，请稍后重试",
	"error.too_many_requests":      "尝试次数过多，请稍后再试",
	"error.not_found":              "资源不存在",
	"error.internal":               "服务器内部错误",
	"error.session_invalid":        "会话无效",
	"error.session_failed":         "会话状态读取失败",
	"error.product_id_invalid":     "商品ID无效",
	"error.product_not_found":      "商品不存在",
	"error.product_fetch_failed":   "商品获取失败",
	"error.category_invalid":       "未知的商品分类",
	"error.sort_mode_invalid":      "未知的排序方式",
	"error.quantity_invalid":       "数量至少为 1",
	"error.cart_empty":             "购物车为空",
	"error.cart_load_failed":       "购物车加载失败",
	"error.cart_update_failed":     "购物车更新失败",
	"error.store_unavailable":      "数据存储暂不可用，请重试",
	"error.store_request_failed":   "数据存储拒绝了请求",
	"error.user_not_found":         "用户不存在",
	"error.user_fetch_failed":      "用户获取失败",
	"error.collection_unknown":     "未知的集合",
	"error.collection_read_only":   "集合为只读",
	"error.document_invalid":       "文档格式错误",
	"error.document_conflict":      "文档已存在",
	"message.logged_out":           "已退出登录",
	"message.cart_cleared":         "购物车已清空",
	"message.checkout_completed":   "结算完成",
	"message.filters_reset":        "筛选条件已重置",
}
