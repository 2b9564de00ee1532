package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	Create(cart *models.Cart) error
	GetByID(id string) (*models.Cart, error)
	GetWithItems(id string) (*models.Cart, error)
	Delete(id string) (bool, error)
	ListItems(cartID string) ([]models.CartItem, error)
	GetItem(cartID string, itemID uint) (*models.CartItem, error)
	AddQuantity(cartID string, productID uint, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(item *models.CartItem, quantity int) error
	DeleteItem(cartID string, itemID uint) (bool, error)
	DeleteStale(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Omit("Items").Create(cart).Error
}

// GetByID 根据 ID 获取购物车
func (r *GormCartRepository) GetByID(id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("id = ?", id).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetWithItems 获取购物车及其商品明细
func (r *GormCartRepository) GetWithItems(id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Product").Where("id = ?", id).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Delete 删除购物车及其购物车项，返回购物车是否存在
func (r *GormCartRepository) Delete(id string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Cart{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListItems 获取购物车项（附带商品）
func (r *GormCartRepository) ListItems(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 获取购物车内的指定项
func (r *GormCartRepository) GetItem(cartID string, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ErrQuantityLimitExceeded 累加后超出 constants.MaxItemQuantity
var ErrQuantityLimitExceeded = errors.New("cart item quantity limit exceeded")

// AddQuantity 累加购物车项数量，不存在时创建
// 并发创建同一商品行触发唯一索引冲突时重试一次，第二次会走累加分支
func (r *GormCartRepository) AddQuantity(cartID string, productID uint, quantity int) (*models.CartItem, error) {
	if quantity > constants.MaxItemQuantity {
		return nil, ErrQuantityLimitExceeded
	}
	item, err := r.addQuantity(cartID, productID, quantity)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		item, err = r.addQuantity(cartID, productID, quantity)
	}
	return item, err
}

func (r *GormCartRepository) addQuantity(cartID string, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND quantity <= ?", cartID, productID, constants.MaxItemQuantity-quantity).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var existing int64
			if err := tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return ErrQuantityLimitExceeded
			}
			item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			return tx.Omit("Product").Create(&item).Error
		}
		return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity 覆盖购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(item *models.CartItem, quantity int) error {
	if item == nil {
		return nil
	}
	if err := r.db.Model(&models.CartItem{}).Where("id = ?", item.ID).Update("quantity", quantity).Error; err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

// DeleteItem 删除购物车项，返回是否存在
func (r *GormCartRepository) DeleteItem(cartID string, itemID uint) (bool, error) {
	result := r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteStale 删除早于指定时间创建的购物车
func (r *GormCartRepository) DeleteStale(before time.Time) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&models.Cart{}).Select("id").Where("created_at < ?", before)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("created_at < ?", before).Delete(&models.Cart{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}
