package service

import (
	"errors"
	"strings"

	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// NotificationService 组装并发送顾客邮件，供异步任务调用
type NotificationService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	email        *EmailService
}

// NewNotificationService 创建通知服务
func NewNotificationService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, email *EmailService) *NotificationService {
	return &NotificationService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		email:        email,
	}
}

// OrderPlaced 发送下单确认
func (s *NotificationService) OrderPlaced(orderID uint) error {
	order, user, err := s.loadOrderRecipient(orderID)
	if err != nil || user == nil {
		return err
	}
	total := models.Money{}
	for _, item := range order.Items {
		total = total.Add(item.UnitPrice.MulInt(item.Quantity))
	}
	input := OrderPlacedEmailInput{
		Name:      displayName(user),
		OrderID:   order.ID,
		ItemCount: len(order.Items),
		Total:     total,
	}
	return s.deliver(user.Email, func() error {
		return s.email.SendOrderPlacedEmail(user.Email, input, i18n.DefaultLocale)
	})
}

// PaymentStatusChanged 发送支付状态变更通知
func (s *NotificationService) PaymentStatusChanged(orderID uint, status string) error {
	order, user, err := s.loadOrderRecipient(orderID)
	if err != nil || user == nil {
		return err
	}
	if status == "" {
		status = order.PaymentStatus
	}
	input := PaymentStatusEmailInput{
		Name:    displayName(user),
		OrderID: order.ID,
		Status:  status,
	}
	return s.deliver(user.Email, func() error {
		return s.email.SendPaymentStatusEmail(user.Email, input, i18n.DefaultLocale)
	})
}

// NotifyCustomers 向全部顾客发送自定义邮件，单个收件人失败不影响其他人
func (s *NotificationService) NotifyCustomers(subject, message string) (int, error) {
	customers, err := s.customerRepo.ListAllWithUser()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, customer := range customers {
		if customer.User == nil || strings.TrimSpace(customer.User.Email) == "" {
			continue
		}
		email := customer.User.Email
		err := s.deliver(email, func() error {
			return s.email.SendCustomEmail(email, subject, message)
		})
		if err != nil {
			logger.Warnw("customers_notify_send_failed",
				"customer_id", customer.ID,
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *NotificationService) loadOrderRecipient(orderID uint) (*models.Order, *models.User, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		logger.Warnw("notification_order_missing", "order_id", orderID)
		return nil, nil, nil
	}
	if order.Customer == nil || order.Customer.User == nil {
		logger.Warnw("notification_order_recipient_missing", "order_id", orderID)
		return order, nil, nil
	}
	return order, order.Customer.User, nil
}

// deliver 邮件未启用时仅记录日志
func (s *NotificationService) deliver(to string, send func() error) error {
	if !s.email.Enabled() {
		logger.Infow("email_skipped_disabled", "to", to)
		return nil
	}
	err := send()
	if errors.Is(err, ErrEmailRecipientRejected) || errors.Is(err, ErrInvalidEmail) {
		logger.Warnw("email_recipient_rejected", "to", to, "error", err)
		return nil
	}
	return err
}

func displayName(user *models.User) string {
	name := strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
	if name == "" {
		return user.Email
	}
	return name
}
