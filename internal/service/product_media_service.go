package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ReviewInput 评价输入
type ReviewInput struct {
	Name        string
	Description string
}

// ReviewPatch 评价部分更新
type ReviewPatch struct {
	Name        *string
	Description *string
}

// ProductMediaService 商品图片与评价服务，所有操作都限定在路径中的商品下
type ProductMediaService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	reviewRepo  repository.ReviewRepository
	uploads     *UploadService
}

// NewProductMediaService 创建商品图片与评价服务
func NewProductMediaService(productRepo repository.ProductRepository, imageRepo repository.ProductImageRepository, reviewRepo repository.ReviewRepository, uploads *UploadService) *ProductMediaService {
	return &ProductMediaService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		reviewRepo:  reviewRepo,
		uploads:     uploads,
	}
}

func (s *ProductMediaService) ensureProduct(productID uint) error {
	exists, err := s.productRepo.Exists(productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}
	return nil
}

// ListImages 商品图片列表
func (s *ProductMediaService) ListImages(productID uint) ([]models.ProductImage, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByProduct(productID)
}

// GetImage 获取商品图片
func (s *ProductMediaService) GetImage(productID, imageID uint) (*models.ProductImage, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	image, err := s.imageRepo.GetByProductAndID(productID, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

// AddImage 上传商品图片
func (s *ProductMediaService) AddImage(ctx context.Context, productID uint, file *multipart.FileHeader) (*models.ProductImage, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	if s.uploads == nil {
		return nil, ErrUploadFailed
	}
	obj, err := s.uploads.SaveImage(ctx, file)
	if err != nil {
		return nil, err
	}
	image := &models.ProductImage{
		ProductID:  productID,
		Image:      obj.URL,
		StorageKey: obj.Key,
	}
	if err := s.imageRepo.Create(image); err != nil {
		if removeErr := s.uploads.Remove(ctx, obj.Key); removeErr != nil {
			logger.Warnw("product_image_rollback_remove_failed", "key", obj.Key, "error", removeErr)
		}
		return nil, err
	}
	return image, nil
}

// DeleteImage 删除商品图片，存储侧删除失败只记录日志
func (s *ProductMediaService) DeleteImage(ctx context.Context, productID, imageID uint) error {
	image, err := s.GetImage(productID, imageID)
	if err != nil {
		return err
	}
	if err := s.imageRepo.Delete(image.ID); err != nil {
		return err
	}
	if s.uploads != nil && image.StorageKey != "" {
		if err := s.uploads.Remove(ctx, image.StorageKey); err != nil {
			logger.Warnw("product_image_storage_remove_failed",
				"product_id", productID,
				"image_id", imageID,
				"error", err,
			)
		}
	}
	return nil
}

// ListReviews 商品评价列表
func (s *ProductMediaService) ListReviews(productID uint) ([]models.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProduct(productID)
}

// GetReview 获取商品评价
func (s *ProductMediaService) GetReview(productID, reviewID uint) (*models.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByProductAndID(productID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// CreateReview 创建评价，商品取自路径
func (s *ProductMediaService) CreateReview(productID uint, input ReviewInput) (*models.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}
	review := &models.Review{
		ProductID:   productID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview 更新评价
func (s *ProductMediaService) UpdateReview(productID, reviewID uint, patch ReviewPatch) (*models.Review, error) {
	review, err := s.GetReview(productID, reviewID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		review.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		review.Description = strings.TrimSpace(*patch.Description)
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview 删除评价
func (s *ProductMediaService) DeleteReview(productID, reviewID uint) error {
	review, err := s.GetReview(productID, reviewID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}
