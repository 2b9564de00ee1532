package repository

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

const collectionStatSelect = "collections.*, (SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id) AS products_count"

// CollectionRepository 集合数据访问接口
type CollectionRepository interface {
	List(filter CollectionListFilter) ([]CollectionStat, int64, error)
	GetByID(id uint) (*models.Collection, error)
	GetStat(id uint) (*CollectionStat, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(id uint) error
	CountProducts(collectionID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormCollectionRepository
}

// GormCollectionRepository GORM 实现
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository 创建集合仓库
func NewCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCollectionRepository) WithTx(tx *gorm.DB) *GormCollectionRepository {
	if tx == nil {
		return r
	}
	return &GormCollectionRepository{db: tx}
}

// List 集合列表（附带商品数量），按标题排序
func (r *GormCollectionRepository) List(filter CollectionListFilter) ([]CollectionStat, int64, error) {
	query := r.db.Model(&models.Collection{})
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "collections.title")
		query = query.Where(condition, repeatLikeArgs(containsPattern(filter.Search), count)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stats []CollectionStat
	query = applyPagination(query.Select(collectionStatSelect).Order("collections.title ASC, collections.id ASC"), filter.Page, filter.PageSize)
	if err := query.Scan(&stats).Error; err != nil {
		return nil, 0, err
	}
	return stats, total, nil
}

// GetByID 根据 ID 获取集合
func (r *GormCollectionRepository) GetByID(id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

// GetStat 获取集合及其商品数量
func (r *GormCollectionRepository) GetStat(id uint) (*CollectionStat, error) {
	var stats []CollectionStat
	err := r.db.Model(&models.Collection{}).
		Select(collectionStatSelect).
		Where("collections.id = ?", id).
		Limit(1).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

// Create 创建集合
func (r *GormCollectionRepository) Create(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

// Update 更新集合
func (r *GormCollectionRepository) Update(collection *models.Collection) error {
	return r.db.Save(collection).Error
}

// Delete 删除集合及其标签关联
func (r *GormCollectionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteTaggedItemsFor(tx, constants.TaggableCollection, id); err != nil {
			return err
		}
		return tx.Delete(&models.Collection{}, id).Error
	})
}

// CountProducts 统计集合下商品数量
func (r *GormCollectionRepository) CountProducts(collectionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("collection_id = ?", collectionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
