package admin

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/整体替换商品请求
type ProductRequest struct {
	Title        string           `json:"title" binding:"required,max=255"`
	Slug         string           `json:"slug" binding:"max=255"`
	Description  string           `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price" binding:"required"`
	Inventory    *int             `json:"inventory" binding:"required"`
	CollectionID uint             `json:"collection_id" binding:"required"`
}

// ProductPatchRequest 部分更新商品请求
type ProductPatchRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Slug         *string          `json:"slug" binding:"omitempty,max=255"`
	Description  *string          `json:"description"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Inventory    *int             `json:"inventory"`
	CollectionID *uint            `json:"collection_id"`
}

// ProductPromotionsRequest 设置商品促销活动请求
type ProductPromotionsRequest struct {
	PromotionIDs []uint `json:"promotion_ids"`
}

// CleanInventoryRequest 批量清空库存请求
type CleanInventoryRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// GetAdminProducts 后台商品列表，附带库存状态
func (h *Handler) GetAdminProducts(c *gin.Context) {
	query, ok := handlershared.ParseProductQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.List(query, true)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(query.Page, query.PageSize, total))
}

// GetAdminProduct 后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id, true)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(service.ProductInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		UnitPrice:    *req.UnitPrice,
		Inventory:    *req.Inventory,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, product)
}

// ReplaceProduct 整体替换商品
func (h *Handler) ReplaceProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(id, service.ProductPatch{
		Title:        &req.Title,
		Slug:         &req.Slug,
		Description:  &req.Description,
		UnitPrice:    req.UnitPrice,
		Inventory:    req.Inventory,
		CollectionID: &req.CollectionID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, product)
}

// PatchProduct 部分更新商品
func (h *Handler) PatchProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	var req ProductPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(id, service.ProductPatch{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品；被订单项引用时返回 405
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id, "operator_admin_id", currentAdminID(c))
	response.NoContent(c)
}

// SetProductPromotions 覆盖设置商品促销活动
func (h *Handler) SetProductPromotions(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	var req ProductPromotionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductService.SetPromotions(id, req.PromotionIDs)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, product)
}

// CleanInventory 批量清空库存
func (h *Handler) CleanInventory(c *gin.Context) {
	var req CleanInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	updated, err := h.ProductService.CleanInventory(req.IDs)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_inventory_cleaned", "updated", updated, "operator_admin_id", currentAdminID(c))
	response.Success(c, gin.H{"updated": updated})
}
