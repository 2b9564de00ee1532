package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItems(items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	UpdatePaymentStatus(id uint, from, to string) (bool, error)
	Delete(id uint) error
	CountItems(orderID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单（不含订单项）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Omit("Customer", "Items").Create(order).Error
}

// CreateItems 批量写入订单项
func (r *GormOrderRepository) CreateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Omit("Product").Create(&items).Error
}

// GetByID 根据 ID 获取订单详情
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.detailQuery().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer 获取顾客自己的订单
func (r *GormOrderRepository) GetByIDAndCustomer(id, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.detailQuery().Where("customer_id = ?", customerID).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 订单列表，最新在前
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	query = query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id ASC")
	}).Preload("Items.Product").Order("placed_at DESC, id DESC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdatePaymentStatus 按旧状态条件更新支付状态，返回是否更新成功
func (r *GormOrderRepository) UpdatePaymentStatus(id uint, from, to string) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除订单
func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}

// CountItems 统计订单项数量
func (r *GormOrderRepository) CountItems(orderID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) detailQuery() *gorm.DB {
	return r.db.Preload("Customer").
		Preload("Customer.User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.Product")
}
