package admin

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 整体更新评价请求
type ReviewRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// ReviewPatchRequest 部分更新评价请求
type ReviewPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

// UploadProductImage 上传商品图片（multipart 字段 image）
func (h *Handler) UploadProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	file, _ := c.FormFile("image")
	image, err := h.ProductMediaService.AddImage(c.Request.Context(), productID, file)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, image)
}

// DeleteProductImage 删除商品图片
func (h *Handler) DeleteProductImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id", "error.image_not_found")
	if !ok {
		return
	}
	if err := h.ProductMediaService.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}

// ReplaceProductReview 整体更新评价
func (h *Handler) ReplaceProductReview(c *gin.Context) {
	productID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ProductMediaService.UpdateReview(productID, reviewID, service.ReviewPatch{
		Name:        &req.Name,
		Description: &req.Description,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, review)
}

// PatchProductReview 部分更新评价
func (h *Handler) PatchProductReview(c *gin.Context) {
	productID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}
	var req ReviewPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ProductMediaService.UpdateReview(productID, reviewID, service.ReviewPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteProductReview 删除评价
func (h *Handler) DeleteProductReview(c *gin.Context) {
	productID, reviewID, ok := parseReviewPath(c)
	if !ok {
		return
	}
	if err := h.ProductMediaService.DeleteReview(productID, reviewID); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}

func parseReviewPath(c *gin.Context) (uint, uint, bool) {
	productID, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok := parseIDParam(c, "review_id", "error.review_not_found")
	if !ok {
		return 0, 0, false
	}
	return productID, reviewID, true
}
