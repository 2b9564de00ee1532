package service

import (
	"sort"
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// TaggableLookup 判断某类对象是否存在
type TaggableLookup func(id uint) (bool, error)

// TaggedItemInput 打标签输入，TagID 与 Label 二选一，Label 不存在时自动创建标签
type TaggedItemInput struct {
	TagID      uint
	Label      string
	ObjectType string
	ObjectID   uint
}

// TagService 通用标签服务
type TagService struct {
	tagRepo  repository.TagRepository
	registry map[string]TaggableLookup
}

// NewTagService 创建标签服务
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{
		tagRepo:  tagRepo,
		registry: make(map[string]TaggableLookup),
	}
}

// NewDefaultTagService 创建注册了商品、集合、顾客三类对象的标签服务
func NewDefaultTagService(tagRepo repository.TagRepository, productRepo repository.ProductRepository, collectionRepo repository.CollectionRepository, customerRepo repository.CustomerRepository) *TagService {
	s := NewTagService(tagRepo)
	s.Register(constants.TaggableProduct, productRepo.Exists)
	s.Register(constants.TaggableCollection, func(id uint) (bool, error) {
		collection, err := collectionRepo.GetByID(id)
		return collection != nil, err
	})
	s.Register(constants.TaggableCustomer, func(id uint) (bool, error) {
		customer, err := customerRepo.GetByID(id)
		return customer != nil, err
	})
	return s
}

// Register 注册可打标签的对象类型
func (s *TagService) Register(objectType string, lookup TaggableLookup) {
	objectType = strings.ToLower(strings.TrimSpace(objectType))
	if objectType == "" || lookup == nil {
		return
	}
	s.registry[objectType] = lookup
}

// Kinds 已注册的对象类型
func (s *TagService) Kinds() []string {
	kinds := make([]string, 0, len(s.registry))
	for kind := range s.registry {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (s *TagService) resolveKind(objectType string) (string, TaggableLookup, error) {
	kind := strings.ToLower(strings.TrimSpace(objectType))
	lookup, ok := s.registry[kind]
	if !ok {
		return "", nil, ErrTaggableTypeInvalid
	}
	return kind, lookup, nil
}

// List 标签列表
func (s *TagService) List(filter repository.TagListFilter) ([]models.Tag, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.tagRepo.List(filter)
}

// Create 创建标签
func (s *TagService) Create(label string) (*models.Tag, error) {
	label = strings.TrimSpace(label)
	exist, err := s.tagRepo.GetByLabel(label)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrTagExists
	}
	tag := &models.Tag{Label: label}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Update 修改标签名
func (s *TagService) Update(id uint, label string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	label = strings.TrimSpace(label)
	exist, err := s.tagRepo.GetByLabel(label)
	if err != nil {
		return nil, err
	}
	if exist != nil && exist.ID != id {
		return nil, ErrTagExists
	}
	tag.Label = label
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete 删除标签及其关联
func (s *TagService) Delete(id uint) error {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}
	return s.tagRepo.Delete(id)
}

// ItemsFor 对象上的标签关联
func (s *TagService) ItemsFor(objectType string, objectID uint) ([]models.TaggedItem, error) {
	kind, _, err := s.resolveKind(objectType)
	if err != nil {
		return nil, err
	}
	return s.tagRepo.ListItems(kind, objectID)
}

// TagsFor 对象上的标签
func (s *TagService) TagsFor(objectType string, objectID uint) ([]models.Tag, error) {
	kind, lookup, err := s.resolveKind(objectType)
	if err != nil {
		return nil, err
	}
	exists, err := lookup(objectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaggableObjectNotFound
	}
	return s.tagRepo.TagsFor(kind, objectID)
}

// Attach 给对象打标签
func (s *TagService) Attach(input TaggedItemInput) (*models.TaggedItem, error) {
	kind, lookup, err := s.resolveKind(input.ObjectType)
	if err != nil {
		return nil, err
	}
	exists, err := lookup(input.ObjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaggableObjectNotFound
	}

	tag, err := s.resolveTag(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.tagRepo.FindItem(tag.ID, kind, input.ObjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTaggedItemExists
	}

	item := &models.TaggedItem{
		TagID:      tag.ID,
		ObjectType: kind,
		ObjectID:   input.ObjectID,
	}
	if err := s.tagRepo.CreateItem(item); err != nil {
		return nil, err
	}
	item.Tag = tag
	return item, nil
}

func (s *TagService) resolveTag(input TaggedItemInput) (*models.Tag, error) {
	if input.TagID != 0 {
		tag, err := s.tagRepo.GetByID(input.TagID)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return nil, ErrTagNotFound
		}
		return tag, nil
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, ErrTagNotFound
	}
	tag, err := s.tagRepo.GetByLabel(label)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}
	return s.Create(label)
}

// Detach 删除标签关联
func (s *TagService) Detach(itemID uint) error {
	item, err := s.tagRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrTaggedItemNotFound
	}
	return s.tagRepo.DeleteItem(itemID)
}
