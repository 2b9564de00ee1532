package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// GetProductImages 获取商品图片列表
func (h *Handler) GetProductImages(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	images, err := h.ProductMediaService.ListImages(productID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, images)
}

// GetProductImage 获取商品图片
func (h *Handler) GetProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id", "error.image_not_found")
	if !ok {
		return
	}
	image, err := h.ProductMediaService.GetImage(productID, imageID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, image)
}

// GetProductReviews 获取商品评价列表
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	reviews, err := h.ProductMediaService.ListReviews(productID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, reviews)
}

// GetProductReview 获取单条评价
func (h *Handler) GetProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id", "error.review_not_found")
	if !ok {
		return
	}
	review, err := h.ProductMediaService.GetReview(productID, reviewID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, review)
}

// CreateProductReview 登录用户发表评价
func (h *Handler) CreateProductReview(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ProductMediaService.CreateReview(productID, service.ReviewInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, review)
}
