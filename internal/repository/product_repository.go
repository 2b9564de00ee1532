package repository

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productOrderings = map[string]string{
	"title":        "products.title ASC, products.id ASC",
	"unit_price":   "products.unit_price ASC, products.id ASC",
	"-unit_price":  "products.unit_price DESC, products.id ASC",
	"last_update":  "products.last_update ASC, products.id ASC",
	"-last_update": "products.last_update DESC, products.id ASC",
}

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Exists(id uint) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	DeleteCascade(id uint) error
	CountOrderItems(productID uint) (int64, error)
	ReplacePromotions(product *models.Product, promotions []models.Promotion) error
	ClearInventory(ids []uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CollectionID != 0 {
		query = query.Where("products.collection_id = ?", filter.CollectionID)
	}
	if filter.PriceGT != nil {
		query = query.Where("products.unit_price > ?", filter.PriceGT.StringFixed(2))
	}
	if filter.PriceLT != nil {
		query = query.Where("products.unit_price < ?", filter.PriceLT.StringFixed(2))
	}
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "products.title", "products.description")
		query = query.Where(condition, repeatLikeArgs(containsPattern(filter.Search), count)...)
	}
	switch filter.Inventory {
	case "low":
		query = query.Where("products.inventory < ?", filter.LowThreshold)
	case "ok":
		query = query.Where("products.inventory >= ?", filter.LowThreshold)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy, ok := productOrderings[filter.Ordering]
	if !ok {
		orderBy = productOrderings["title"]
	}
	var products []models.Product
	if err := applyPagination(query.Order(orderBy), filter.Page, filter.PageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（附带促销活动）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Promotions").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Exists 商品是否存在
func (r *GormProductRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Omit(clause.Associations).Create(product).Error
}

// Update 更新商品（不触碰促销关联）
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit(clause.Associations).Save(product).Error
}

// DeleteCascade 删除商品并级联清理图片、评价、购物车项、促销与标签关联，清空集合推荐
// 调用方需保证已无订单项引用该商品
func (r *GormProductRepository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Product{ID: id}).Association("Promotions").Clear(); err != nil {
			return err
		}
		if err := deleteTaggedItemsFor(tx, constants.TaggableProduct, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Collection{}).
			Where("featured_product_id = ?", id).
			Update("featured_product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// CountOrderItems 统计引用商品的订单项数量
func (r *GormProductRepository) CountOrderItems(productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplacePromotions 覆盖商品促销活动
func (r *GormProductRepository) ReplacePromotions(product *models.Product, promotions []models.Promotion) error {
	if product == nil {
		return nil
	}
	association := r.db.Model(product).Association("Promotions")
	if len(promotions) == 0 {
		if err := association.Clear(); err != nil {
			return err
		}
		product.Promotions = []models.Promotion{}
		return nil
	}
	if err := association.Replace(promotions); err != nil {
		return err
	}
	product.Promotions = promotions
	return nil
}

// ClearInventory 批量清空库存，返回受影响的商品数量
func (r *GormProductRepository) ClearInventory(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Product{}).Where("id IN ?", ids).Update("inventory", 0)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
