package service

import (
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// 允许的支付状态流转，已完成为终态
var paymentTransitions = map[string][]string{
	constants.PaymentStatusPending: {constants.PaymentStatusComplete, constants.PaymentStatusFailed},
	constants.PaymentStatusFailed:  {constants.PaymentStatusPending, constants.PaymentStatusComplete},
}

// OrderItemView 订单项响应
type OrderItemView struct {
	ID         uint         `json:"id"`
	Product    CartProduct  `json:"product"`
	UnitPrice  models.Money `json:"unit_price"`
	Quantity   int          `json:"quantity"`
	TotalPrice models.Money `json:"total_price"`
}

// OrderView 订单响应
type OrderView struct {
	ID            uint            `json:"id"`
	CustomerID    uint            `json:"customer"`
	PlacedAt      time.Time       `json:"placed_at"`
	PaymentStatus string          `json:"payment_status"`
	Items         []OrderItemView `json:"items"`
	TotalPrice    models.Money    `json:"total_price"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	queueClient  *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, customerRepo repository.CustomerRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		queueClient:  queueClient,
	}
}

// IsValidPaymentStatus 判断支付状态是否合法
func IsValidPaymentStatus(status string) bool {
	switch status {
	case constants.PaymentStatusPending, constants.PaymentStatusComplete, constants.PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransitPaymentStatus 判断支付状态是否可从 from 变更为 to
func CanTransitPaymentStatus(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateFromCart 由购物车生成订单
// 顾客档案、订单、订单项与购物车删除在同一事务内完成，购物车已被并发下单删除时整体回滚
func (s *OrderService) CreateFromCart(userID uint, cartID string) (*OrderView, error) {
	id, ok := NormalizeCartID(cartID)
	if !ok {
		return nil, ErrOrderCartNotFound
	}
	cart, err := s.cartRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrOrderCartNotFound
	}
	items, err := s.cartRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var order *models.Order
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		current, err := cartRepo.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrOrderCartNotFound
		}
		cartItems, err := cartRepo.ListItems(id)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		customer, err := s.customerRepo.WithTx(tx).GetOrCreateByUserID(userID)
		if err != nil {
			return err
		}
		order = &models.Order{
			CustomerID:    customer.ID,
			PaymentStatus: constants.PaymentStatusPending,
		}
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			if item.Product == nil {
				return ErrProductRefNotFound
			}
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.UnitPrice,
			})
		}
		if err := orderRepo.CreateItems(orderItems); err != nil {
			return err
		}

		deleted, err := cartRepo.Delete(id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrOrderCartNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_enqueue_placed_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
	return s.Get(order.ID)
}

// ListForUser 当前用户的订单，最新在前
func (s *OrderService) ListForUser(userID uint, page, pageSize int) ([]OrderView, int64, error) {
	customer, err := s.customerRepo.GetByUserID(userID)
	if err != nil {
		return nil, 0, err
	}
	if customer == nil {
		return []OrderView{}, 0, nil
	}
	return s.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customer.ID,
	})
}

// GetForUser 获取当前用户的订单，他人订单视为不存在
func (s *OrderService) GetForUser(userID, orderID uint) (*OrderView, error) {
	customer, err := s.customerRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customer.ID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderView(order), nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]OrderView, int64, error) {
	if filter.PaymentStatus != "" && !IsValidPaymentStatus(filter.PaymentStatus) {
		return nil, 0, ErrPaymentStatusInvalid
	}
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *buildOrderView(&orders[i]))
	}
	return views, total, nil
}

// Get 获取订单详情
func (s *OrderService) Get(orderID uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderView(order), nil
}

// UpdatePaymentStatus 修改支付状态
func (s *OrderService) UpdatePaymentStatus(orderID uint, status string) (*OrderView, error) {
	if !IsValidPaymentStatus(status) {
		return nil, ErrPaymentStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == status {
		return buildOrderView(order), nil
	}
	if !CanTransitPaymentStatus(order.PaymentStatus, status) {
		return nil, &PaymentTransitionError{From: order.PaymentStatus, To: status}
	}
	updated, err := s.orderRepo.UpdatePaymentStatus(orderID, order.PaymentStatus, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// 状态已被并发修改
		current, err := s.orderRepo.GetByID(orderID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		return nil, &PaymentTransitionError{From: current.PaymentStatus, To: status}
	}

	if err := s.queueClient.EnqueueOrderPaymentStatus(queue.OrderPaymentStatusPayload{OrderID: orderID, Status: status}); err != nil {
		logger.Warnw("order_enqueue_payment_status_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
	return s.Get(orderID)
}

// Delete 删除订单；存在订单项时拒绝
func (s *OrderService) Delete(orderID uint) error {
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		count, err := repo.CountItems(orderID)
		if err != nil {
			return err
		}
		order, err := repo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if count > 0 {
			return ErrOrderHasItems
		}
		return repo.Delete(orderID)
	})
	return mapForeignKeyViolation(err, ErrOrderHasItems)
}

func buildOrderView(order *models.Order) *OrderView {
	view := &OrderView{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: order.PaymentStatus,
		Items:         make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		product := CartProduct{ID: item.ProductID}
		if item.Product != nil {
			product.Title = item.Product.Title
			product.UnitPrice = item.Product.UnitPrice
		}
		itemView := OrderItemView{
			ID:         item.ID,
			Product:    product,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: item.UnitPrice.MulInt(item.Quantity),
		}
		view.TotalPrice = view.TotalPrice.Add(itemView.TotalPrice)
		view.Items = append(view.Items, itemView)
	}
	return view
}
