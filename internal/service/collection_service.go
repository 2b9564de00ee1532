package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// CollectionInput 创建/整体更新集合输入
type CollectionInput struct {
	Title             string
	FeaturedProductID *uint
}

// CollectionPatch 部分更新集合输入
type CollectionPatch struct {
	Title             *string
	FeaturedProductID *uint
	ClearFeatured     bool
}

// CollectionService 集合服务
type CollectionService struct {
	collectionRepo repository.CollectionRepository
	productRepo    repository.ProductRepository
}

// NewCollectionService 创建集合服务
func NewCollectionService(collectionRepo repository.CollectionRepository, productRepo repository.ProductRepository) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
	}
}

type collectionPage struct {
	Items []repository.CollectionStat `json:"items"`
	Total int64                       `json:"total"`
}

// List 集合列表（附带商品数量），结果按目录版本缓存
func (s *CollectionService) List(ctx context.Context, filter repository.CollectionListFilter) ([]repository.CollectionStat, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	cacheName := fmt.Sprintf("collections:%d:%d:%s", filter.Page, filter.PageSize, filter.Search)

	var cached collectionPage
	if hit, err := cache.GetCatalog(ctx, cacheName, &cached); err == nil && hit {
		return cached.Items, cached.Total, nil
	}

	stats, total, err := s.collectionRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if stats == nil {
		stats = []repository.CollectionStat{}
	}
	if err := cache.SetCatalog(ctx, cacheName, collectionPage{Items: stats, Total: total}); err != nil {
		logger.Warnw("collection_list_cache_set_failed", "error", err)
	}
	return stats, total, nil
}

// Get 获取集合详情
func (s *CollectionService) Get(id uint) (*repository.CollectionStat, error) {
	stat, err := s.collectionRepo.GetStat(id)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, ErrCollectionNotFound
	}
	return stat, nil
}

// Create 创建集合
func (s *CollectionService) Create(input CollectionInput) (*repository.CollectionStat, error) {
	collection := &models.Collection{
		Title:             strings.TrimSpace(input.Title),
		FeaturedProductID: input.FeaturedProductID,
	}
	if collection.Title == "" {
		return nil, ErrTitleBlank
	}
	if err := s.checkFeatured(collection.FeaturedProductID); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Create(collection); err != nil {
		return nil, err
	}
	s.bumpCatalog()
	return s.Get(collection.ID)
}

// Replace 整体更新集合
func (s *CollectionService) Replace(id uint, input CollectionInput) (*repository.CollectionStat, error) {
	collection, err := s.load(id)
	if err != nil {
		return nil, err
	}
	collection.Title = strings.TrimSpace(input.Title)
	collection.FeaturedProductID = input.FeaturedProductID
	return s.save(collection)
}

// Patch 部分更新集合
func (s *CollectionService) Patch(id uint, patch CollectionPatch) (*repository.CollectionStat, error) {
	collection, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		collection.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.ClearFeatured {
		collection.FeaturedProductID = nil
	} else if patch.FeaturedProductID != nil {
		collection.FeaturedProductID = patch.FeaturedProductID
	}
	return s.save(collection)
}

func (s *CollectionService) load(id uint) (*models.Collection, error) {
	collection, err := s.collectionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	return collection, nil
}

func (s *CollectionService) save(collection *models.Collection) (*repository.CollectionStat, error) {
	if collection.Title == "" {
		return nil, ErrTitleBlank
	}
	if err := s.checkFeatured(collection.FeaturedProductID); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Update(collection); err != nil {
		return nil, err
	}
	s.bumpCatalog()
	return s.Get(collection.ID)
}

func (s *CollectionService) checkFeatured(productID *uint) error {
	if productID == nil {
		return nil
	}
	exists, err := s.productRepo.Exists(*productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductRefNotFound
	}
	return nil
}

// Delete 删除集合；仍包含商品时拒绝
func (s *CollectionService) Delete(id uint) error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.collectionRepo.WithTx(tx)
		collection, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if collection == nil {
			return ErrCollectionNotFound
		}
		count, err := repo.CountProducts(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCollectionHasProducts
		}
		return repo.Delete(id)
	})
	if err != nil {
		return mapForeignKeyViolation(err, ErrCollectionHasProducts)
	}
	s.bumpCatalog()
	return nil
}

func (s *CollectionService) bumpCatalog() {
	if err := cache.BumpCatalogVersion(context.Background()); err != nil {
		logger.Warnw("catalog_cache_bump_failed", "error", err)
	}
}
