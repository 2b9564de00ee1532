package constants

// 会员等级常量
const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

// 订单支付状态常量
const (
	PaymentStatusPending  = "P"
	PaymentStatusComplete = "C"
	PaymentStatusFailed   = "F"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// MaxItemQuantity 单个购物车项 / 订单项数量上限（smallint）
const MaxItemQuantity = 32767

// 库存状态常量（后台展示）
const (
	InventoryStatusLow = "Low"
	InventoryStatusOK  = "OK"
)

// 可打标签的对象类型
const (
	TaggableProduct    = "product"
	TaggableCollection = "collection"
	TaggableCustomer   = "customer"
)

// 上传存储提供方
const (
	UploadProviderLocal      = "local"
	UploadProviderCloudinary = "cloudinary"
)

// 队列相关常量
const (
	QueueDefault           = "default"
	TaskOrderPlaced        = "order:placed"
	TaskOrderPaymentStatus = "order:payment_status"
	TaskCustomersNotify    = "customers:notify"
	TaskCartPurge          = "carts:purge"
)

// MembershipLabels 会员等级展示名称
var MembershipLabels = map[string]string{
	MembershipBronze: "Bronze",
	MembershipSilver: "Silver",
	MembershipGold:   "Gold",
}

// PaymentStatusLabels 支付状态展示名称
var PaymentStatusLabels = map[string]string{
	PaymentStatusPending:  "Pending",
	PaymentStatusComplete: "Complete",
	PaymentStatusFailed:   "Failed",
}
