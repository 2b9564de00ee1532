package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// ProductImageRepository 商品图片数据访问接口
type ProductImageRepository interface {
	ListByProduct(productID uint) ([]models.ProductImage, error)
	GetByProductAndID(productID, id uint) (*models.ProductImage, error)
	Create(image *models.ProductImage) error
	Delete(id uint) error
}

// GormProductImageRepository GORM 实现
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewProductImageRepository 创建商品图片仓库
func NewProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// ListByProduct 获取商品图片
func (r *GormProductImageRepository) ListByProduct(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// GetByProductAndID 获取商品下的指定图片
func (r *GormProductImageRepository) GetByProductAndID(productID, id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.Where("product_id = ? AND id = ?", productID, id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建图片记录
func (r *GormProductImageRepository) Create(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

// Delete 删除图片记录
func (r *GormProductImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductImage{}, id).Error
}

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	ListByProduct(productID uint) ([]models.Review, error)
	GetByProductAndID(productID, id uint) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id uint) error
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// ListByProduct 获取商品评价，最新在前
func (r *GormReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Order("date DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetByProductAndID 获取商品下的指定评价
func (r *GormReviewRepository) GetByProductAndID(productID, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("product_id = ? AND id = ?", productID, id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
