package queue

import (
	"encoding/json"

	"github.com/storefront-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单确认邮件任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskOrderPaymentStatus 支付状态变更邮件任务
	TaskOrderPaymentStatus = constants.TaskOrderPaymentStatus
	// TaskCustomersNotify 顾客群发通知任务
	TaskCustomersNotify = constants.TaskCustomersNotify
	// TaskCartPurge 过期购物车清理任务
	TaskCartPurge = constants.TaskCartPurge
)

// OrderPlacedPayload 下单任务载荷
type OrderPlacedPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderPaymentStatusPayload 支付状态任务载荷
type OrderPaymentStatusPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// CustomersNotifyPayload 群发通知载荷
type CustomersNotifyPayload struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Locale  string `json:"locale"`
}

// NewOrderPlacedTask 创建下单任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderPlaced, payload)
}

// NewOrderPaymentStatusTask 创建支付状态任务
func NewOrderPaymentStatusTask(payload OrderPaymentStatusPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderPaymentStatus, payload)
}

// NewCustomersNotifyTask 创建群发通知任务
func NewCustomersNotifyTask(payload CustomersNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(TaskCustomersNotify, payload)
}

// NewCartPurgeTask 创建过期购物车清理任务
func NewCartPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskCartPurge, nil)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
