package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销活动数据访问接口
type PromotionRepository interface {
	List() ([]models.Promotion, error)
	GetByID(id uint) (*models.Promotion, error)
	ListByIDs(ids []uint) ([]models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销活动仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// List 促销活动列表
func (r *GormPromotionRepository) List() ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.Order("id DESC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// GetByID 根据 ID 获取促销活动
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// ListByIDs 批量获取促销活动
func (r *GormPromotionRepository) ListByIDs(ids []uint) ([]models.Promotion, error) {
	if len(ids) == 0 {
		return []models.Promotion{}, nil
	}
	var promotions []models.Promotion
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

// Create 创建促销活动
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新促销活动
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

// Delete 删除促销活动并解除商品关联
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_promotions WHERE promotion_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Promotion{}, id).Error
	})
}
