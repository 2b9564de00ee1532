package admin

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionRequest 促销活动请求
type PromotionRequest struct {
	Description string   `json:"description" binding:"required,max=255"`
	Discount    *float64 `json:"discount" binding:"required"`
}

// GetAdminPromotions 促销活动列表
func (h *Handler) GetAdminPromotions(c *gin.Context) {
	promotions, err := h.PromotionService.List()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, promotions)
}

// CreatePromotion 创建促销活动
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	promotion, err := h.PromotionService.Create(service.PromotionInput{
		Description: req.Description,
		Discount:    *req.Discount,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, promotion)
}

// UpdatePromotion 更新促销活动
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.promotion_not_found")
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	promotion, err := h.PromotionService.Update(id, service.PromotionInput{
		Description: req.Description,
		Discount:    *req.Discount,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除促销活动
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.promotion_not_found")
	if !ok {
		return
	}
	if err := h.PromotionService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}
