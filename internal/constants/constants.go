package constants

// 会话常量
const (
	// SessionGuestSentinel 游客身份的保留值
	SessionGuestSentinel = "temp"
	SessionHeader        = "X-Session-ID"
	SessionCookie        = "sid"
	SessionContextKey    = "session"
)

// 会话身份类型
const (
	SessionKindNone  = "none"
	SessionKindGuest = "guest"
	SessionKindUser  = "user"
)

// 购物车操作状态常量
const (
	CartStatusIdle     = "idle"
	CartStatusInFlight = "in_flight"
	CartStatusSettled  = "settled"
	CartStatusFailed   = "failed"
)

// 数量小于 1 时的处理策略
const (
	ZeroQuantityRemove = "remove"
	ZeroQuantityReject = "reject"
)

// 结算后远端清空方式
const (
	RemoteClearSync  = "sync"
	RemoteClearQueue = "queue"
	RemoteClearOff   = "off"
)

// 商品分类常量
const (
	CategoryAppliances  = "Appliances"
	CategoryAudio       = "Audio"
	CategoryWearables   = "Wearables"
	CategoryElectronics = "Electronics"
	CategoryGaming      = "Gaming"
)

// ProductCategories 固定的商品分类集合（展示顺序）
var ProductCategories = []string{
	CategoryAppliances,
	CategoryAudio,
	CategoryWearables,
	CategoryElectronics,
	CategoryGaming,
}

// 排序方式常量
const (
	SortDefault    = ""
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingAsc  = "rating-asc"
	SortRatingDesc = "rating-desc"
)

// 队列常量
const (
	QueueDefault = "default"

	TaskCartRemoteClear = "cart:remote_clear"
)
