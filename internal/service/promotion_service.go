package service

import (
	"strings"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// PromotionInput 促销活动输入
type PromotionInput struct {
	Description string
	Discount    float64
}

// PromotionService 促销活动服务
type PromotionService struct {
	repo repository.PromotionRepository
}

// NewPromotionService 创建促销活动服务
func NewPromotionService(repo repository.PromotionRepository) *PromotionService {
	return &PromotionService{repo: repo}
}

// List 促销活动列表
func (s *PromotionService) List() ([]models.Promotion, error) {
	return s.repo.List()
}

// Create 创建促销活动
func (s *PromotionService) Create(input PromotionInput) (*models.Promotion, error) {
	promotion := &models.Promotion{
		Description: strings.TrimSpace(input.Description),
		Discount:    input.Discount,
	}
	if err := s.repo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Update 更新促销活动
func (s *PromotionService) Update(id uint, input PromotionInput) (*models.Promotion, error) {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	promotion.Description = strings.TrimSpace(input.Description)
	promotion.Discount = input.Discount
	if err := s.repo.Update(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// Delete 删除促销活动
func (s *PromotionService) Delete(id uint) error {
	promotion, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	return s.repo.Delete(id)
}
