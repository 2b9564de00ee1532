package shared

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	respondAppError(c, response.WrapError(code, msg, err))
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respondAppError(c, response.WrapError(code, msg, err))
}

func respondAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.ServerSide() {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		} else {
			log.Warnw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", appErr.Err)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MappedError 定义业务错误到接口错误响应的映射关系。
// Field 非空时以字段级校验错误返回。
type MappedError struct {
	Target error
	Code   int
	Key    string
	Field  string
}

// RespondMappedError 按规则表返回错误，未命中时使用兜底错误并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	locale := i18n.ResolveLocale(c)

	var transitionErr *service.PaymentTransitionError
	if errors.As(err, &transitionErr) {
		msg := i18n.Sprintf(locale, "error.payment_transition_denied", transitionErr.From, transitionErr.To)
		RespondValidation(c, map[string]string{"payment_status": msg})
		return
	}
	if errors.Is(err, service.ErrWeakPassword) {
		if perr, ok := err.(interface {
			Key() string
			Args() []interface{}
		}); ok {
			msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
			RespondValidation(c, map[string]string{"password": msg})
			return
		}
	}

	for _, rule := range rules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		if rule.Field != "" {
			RespondValidation(c, map[string]string{rule.Field: i18n.T(locale, rule.Key)})
			return
		}
		RespondError(c, rule.Code, rule.Key, nil)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// NotFoundErrorRules 资源不存在
var NotFoundErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCollectionNotFound, Code: response.CodeNotFound, Key: "error.collection_not_found"},
	{Target: service.ErrImageNotFound, Code: response.CodeNotFound, Key: "error.image_not_found"},
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "error.review_not_found"},
	{Target: service.ErrPromotionNotFound, Code: response.CodeNotFound, Key: "error.promotion_not_found"},
	{Target: service.ErrCartNotFound, Code: response.CodeNotFound, Key: "error.cart_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrCustomerNotFound, Code: response.CodeNotFound, Key: "error.customer_not_found"},
	{Target: service.ErrAddressNotFound, Code: response.CodeNotFound, Key: "error.address_not_found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrTagNotFound, Code: response.CodeNotFound, Key: "error.tag_not_found"},
	{Target: service.ErrTaggedItemNotFound, Code: response.CodeNotFound, Key: "error.tagged_item_not_found"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

// ProtectedDeleteErrorRules 删除保护，返回 405
var ProtectedDeleteErrorRules = []MappedError{
	{Target: service.ErrCollectionHasProducts, Code: response.CodeMethodNotAllowed, Key: "error.collection_in_use"},
	{Target: service.ErrProductHasOrderItems, Code: response.CodeMethodNotAllowed, Key: "error.product_in_use"},
	{Target: service.ErrCustomerHasOrders, Code: response.CodeMethodNotAllowed, Key: "error.customer_has_orders"},
	{Target: service.ErrOrderHasItems, Code: response.CodeMethodNotAllowed, Key: "error.order_has_items"},
}

// InputErrorRules 请求内容不合法
var InputErrorRules = []MappedError{
	{Target: service.ErrProductRefNotFound, Key: "error.product_ref_not_found", Field: "product_id"},
	{Target: service.ErrCollectionRefNotFound, Key: "error.collection_ref_not_found", Field: "collection_id"},
	{Target: service.ErrPromotionRefNotFound, Key: "error.promotion_ref_not_found", Field: "promotion_ids"},
	{Target: service.ErrOrderCartNotFound, Key: "error.order_cart_not_found", Field: "cart_id"},
	{Target: service.ErrCartEmpty, Key: "error.order_cart_empty", Field: "cart_id"},
	{Target: service.ErrPaymentStatusInvalid, Key: "error.payment_status_invalid", Field: "payment_status"},
	{Target: service.ErrUnitPriceInvalid, Key: "error.unit_price_invalid", Field: "unit_price"},
	{Target: service.ErrInventoryInvalid, Key: "error.inventory_invalid", Field: "inventory"},
	{Target: service.ErrTitleBlank, Key: "error.title_blank", Field: "title"},
	{Target: service.ErrQuantityInvalid, Key: "error.quantity_invalid", Field: "quantity"},
	{Target: service.ErrQuantityTooLarge, Key: "error.quantity_too_large", Field: "quantity"},
	{Target: service.ErrMembershipInvalid, Key: "error.membership_invalid", Field: "membership"},
	{Target: service.ErrInvalidEmail, Key: "error.email_invalid", Field: "email"},
	{Target: service.ErrTaggableTypeInvalid, Key: "error.taggable_type_invalid", Field: "object_type"},
	{Target: service.ErrTaggableObjectNotFound, Key: "error.taggable_object_not_found", Field: "object_id"},
	{Target: service.ErrUploadMissing, Key: "error.upload_missing", Field: "image"},
	{Target: service.ErrUploadTypeInvalid, Key: "error.upload_type_invalid", Field: "image"},
	{Target: service.ErrUploadTooLarge, Key: "error.upload_too_large", Field: "image"},
}

// ConflictErrorRules 唯一约束冲突
var ConflictErrorRules = []MappedError{
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrTagExists, Code: response.CodeConflict, Key: "error.tag_exists"},
	{Target: service.ErrTaggedItemExists, Code: response.CodeConflict, Key: "error.tagged_item_exists"},
}

// InfraErrorRules 外部依赖不可用
var InfraErrorRules = []MappedError{
	{Target: service.ErrQueueUnavailable, Code: response.CodeUnavailable, Key: "error.queue_unavailable"},
	{Target: service.ErrPlaygroundFailed, Code: response.CodeUnavailable, Key: "error.playground_failed"},
	{Target: service.ErrUploadFailed, Code: response.CodeInternal, Key: "error.upload_failed"},
}

// StoreErrorRules 商城通用错误映射
var StoreErrorRules = ConcatMappedErrors(
	NotFoundErrorRules,
	ProtectedDeleteErrorRules,
	InputErrorRules,
	ConflictErrorRules,
	InfraErrorRules,
)
