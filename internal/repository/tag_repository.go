package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// TagRepository 标签数据访问接口
type TagRepository interface {
	List(filter TagListFilter) ([]models.Tag, int64, error)
	GetByID(id uint) (*models.Tag, error)
	GetByLabel(label string) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	ListItems(objectType string, objectID uint) ([]models.TaggedItem, error)
	GetItem(id uint) (*models.TaggedItem, error)
	FindItem(tagID uint, objectType string, objectID uint) (*models.TaggedItem, error)
	CreateItem(item *models.TaggedItem) error
	DeleteItem(id uint) error
	TagsFor(objectType string, objectID uint) ([]models.Tag, error)
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建标签仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 标签列表，按标签名排序
func (r *GormTagRepository) List(filter TagListFilter) ([]models.Tag, int64, error) {
	query := r.db.Model(&models.Tag{})
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "label")
		query = query.Where(condition, repeatLikeArgs(containsPattern(filter.Search), count)...)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tags []models.Tag
	if err := applyPagination(query.Order("label ASC"), filter.Page, filter.PageSize).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// GetByID 根据 ID 获取标签
func (r *GormTagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByLabel 根据标签名获取标签
func (r *GormTagRepository) GetByLabel(label string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("label = ?", label).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Create 创建标签
func (r *GormTagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update 更新标签
func (r *GormTagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete 删除标签及其全部关联
func (r *GormTagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaggedItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// ListItems 获取对象的标签关联
func (r *GormTagRepository) ListItems(objectType string, objectID uint) ([]models.TaggedItem, error) {
	var items []models.TaggedItem
	err := r.db.Preload("Tag").
		Where("object_type = ? AND object_id = ?", objectType, objectID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据 ID 获取标签关联
func (r *GormTagRepository) GetItem(id uint) (*models.TaggedItem, error) {
	var item models.TaggedItem
	if err := r.db.Preload("Tag").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindItem 查找指定标签与对象的关联
func (r *GormTagRepository) FindItem(tagID uint, objectType string, objectID uint) (*models.TaggedItem, error) {
	var item models.TaggedItem
	err := r.db.Where("tag_id = ? AND object_type = ? AND object_id = ?", tagID, objectType, objectID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建标签关联
func (r *GormTagRepository) CreateItem(item *models.TaggedItem) error {
	return r.db.Omit("Tag").Create(item).Error
}

// DeleteItem 删除标签关联
func (r *GormTagRepository) DeleteItem(id uint) error {
	return r.db.Delete(&models.TaggedItem{}, id).Error
}

// TagsFor 获取对象上的全部标签
func (r *GormTagRepository) TagsFor(objectType string, objectID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Model(&models.Tag{}).
		Joins("JOIN tagged_items ON tagged_items.tag_id = tags.id").
		Where("tagged_items.object_type = ? AND tagged_items.object_id = ?", objectType, objectID).
		Order("tags.label ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// deleteTaggedItemsFor 删除对象上的全部标签关联
func deleteTaggedItemsFor(db *gorm.DB, objectType string, objectID uint) error {
	return db.Where("object_type = ? AND object_id = ?", objectType, objectID).Delete(&models.TaggedItem{}).Error
}
