package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultCartExpireHours   = 720
	defaultCartPurgeInterval = time.Hour
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
	mux.HandleFunc(queue.TaskOrderPaymentStatus, c.handleOrderPaymentStatus)
	mux.HandleFunc(queue.TaskCustomersNotify, c.handleCustomersNotify)
	mux.HandleFunc(queue.TaskCartPurge, c.handleCartPurge)
}

func decodePayload(task *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		// 载荷损坏重试也无法恢复
		return fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}

func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.NotificationService == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.NotificationService.OrderPlaced(payload.OrderID); err != nil {
		logger.Warnw("worker_order_placed_send_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderPaymentStatus(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.NotificationService == nil {
		logger.Debugw("worker_order_payment_status_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPaymentStatusPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_payment_status_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_payment_status_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	status := strings.ToUpper(strings.TrimSpace(payload.Status))
	if err := c.NotificationService.PaymentStatusChanged(payload.OrderID, status); err != nil {
		logger.Warnw("worker_order_payment_status_send_failed",
			"order_id", payload.OrderID,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleCustomersNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.NotificationService == nil {
		logger.Debugw("worker_customers_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CustomersNotifyPayload
	if err := decodePayload(task, &payload); err != nil {
		logger.Warnw("worker_customers_notify_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.Subject) == "" && strings.TrimSpace(payload.Message) == "" {
		logger.Debugw("worker_customers_notify_skip_empty")
		return nil
	}
	sent, err := c.NotificationService.NotifyCustomers(payload.Subject, payload.Message)
	if err != nil {
		logger.Warnw("worker_customers_notify_failed", "error", err)
		return err
	}
	logger.Infow("worker_customers_notify_done", "sent", sent)
	return nil
}

func (c *Consumer) handleCartPurge(_ context.Context, _ *asynq.Task) error {
	if c == nil || c.CartService == nil {
		return nil
	}
	maxAge := cartExpireAge(c.Config)
	removed, err := c.CartService.PurgeStale(maxAge)
	if err != nil {
		logger.Warnw("worker_cart_purge_failed", "max_age", maxAge.String(), "error", err)
		return err
	}
	if removed > 0 {
		logger.Infow("worker_cart_purge_done", "removed", removed, "max_age", maxAge.String())
	}
	return nil
}

func cartExpireAge(cfg *config.Config) time.Duration {
	hours := defaultCartExpireHours
	if cfg != nil && cfg.Store.CartExpireHours > 0 {
		hours = cfg.Store.CartExpireHours
	}
	return time.Duration(hours) * time.Hour
}

func cartPurgeInterval(cfg *config.Config) time.Duration {
	if cfg == nil {
		return defaultCartPurgeInterval
	}
	interval, err := time.ParseDuration(strings.TrimSpace(cfg.Store.CartPurgeInterval))
	if err != nil || interval < time.Minute {
		return defaultCartPurgeInterval
	}
	return interval
}
