package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrEmailExists        = errors.New("email exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin exists")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrImageNotFound      = errors.New("product image not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrCartNotFound       = errors.New("cart not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTaggedItemNotFound = errors.New("tagged item not found")

	// 删除保护
	ErrCollectionHasProducts = errors.New("collection has products")
	ErrProductHasOrderItems  = errors.New("product has order items")
	ErrCustomerHasOrders     = errors.New("customer has orders")
	ErrOrderHasItems         = errors.New("order has items")

	// 请求体中引用的对象不存在
	ErrProductRefNotFound    = errors.New("referenced product not found")
	ErrCollectionRefNotFound = errors.New("referenced collection not found")
	ErrPromotionRefNotFound  = errors.New("referenced promotion not found")

	ErrOrderCartNotFound       = errors.New("order cart not found")
	ErrCartEmpty               = errors.New("cart is empty")
	ErrPaymentStatusInvalid    = errors.New("payment status invalid")
	ErrPaymentTransitionDenied = errors.New("payment status transition denied")

	ErrTagExists              = errors.New("tag exists")
	ErrTaggedItemExists       = errors.New("tagged item exists")
	ErrTaggableTypeInvalid    = errors.New("taggable type invalid")
	ErrTaggableObjectNotFound = errors.New("taggable object not found")

	ErrTitleBlank        = errors.New("title blank")
	ErrUnitPriceInvalid  = errors.New("unit price invalid")
	ErrInventoryInvalid  = errors.New("inventory invalid")
	ErrQuantityInvalid   = errors.New("quantity invalid")
	ErrQuantityTooLarge  = errors.New("quantity too large")
	ErrMembershipInvalid = errors.New("membership invalid")

	ErrUploadMissing     = errors.New("upload missing")
	ErrUploadTypeInvalid = errors.New("upload type invalid")
	ErrUploadTooLarge    = errors.New("upload too large")
	ErrUploadFailed      = errors.New("upload failed")

	ErrPlaygroundFailed = errors.New("playground upstream failed")
	ErrQueueUnavailable = errors.New("queue unavailable")
)

// mapForeignKeyViolation 数据库外键约束拒绝时转换为对应业务错误
func mapForeignKeyViolation(err, target error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return target
	}
	return err
}

// PaymentTransitionError 携带被拒绝的状态变更
type PaymentTransitionError struct {
	From string
	To   string
}

func (e *PaymentTransitionError) Error() string {
	return "payment status transition denied: " + e.From + " -> " + e.To
}

// Is 支持 errors.Is(err, ErrPaymentTransitionDenied)
func (e *PaymentTransitionError) Is(target error) bool {
	return target == ErrPaymentTransitionDenied
}
