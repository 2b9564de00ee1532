package admin

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CollectionRequest 创建/整体替换集合请求
type CollectionRequest struct {
	Title             string `json:"title" binding:"required,max=255"`
	FeaturedProductID *uint  `json:"featured_product_id"`
}

// CollectionPatchRequest 部分更新集合请求，featured_product_id 传 null 时清空推荐商品
type CollectionPatchRequest struct {
	Title             *string                  `json:"title" binding:"omitempty,min=1,max=255"`
	FeaturedProductID handlershared.OptionalID `json:"featured_product_id"`
}

// GetAdminCollections 后台集合列表，附带商品数量
func (h *Handler) GetAdminCollections(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, handlershared.DefaultPageSize)
	collections, total, err := h.CollectionService.List(c.Request.Context(), repository.CollectionListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, collections, response.NewPagination(page, pageSize, total))
}

// CreateCollection 创建集合
func (h *Handler) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := h.CollectionService.Create(service.CollectionInput{
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, collection)
}

// ReplaceCollection 整体替换集合
func (h *Handler) ReplaceCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.collection_not_found")
	if !ok {
		return
	}
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := h.CollectionService.Replace(id, service.CollectionInput{
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, collection)
}

// PatchCollection 部分更新集合
func (h *Handler) PatchCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.collection_not_found")
	if !ok {
		return
	}
	var req CollectionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collection, err := h.CollectionService.Patch(id, service.CollectionPatch{
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID.Value,
		ClearFeatured:     req.FeaturedProductID.Cleared(),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, collection)
}

// DeleteCollection 删除集合；仍有商品时返回 405
func (h *Handler) DeleteCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.collection_not_found")
	if !ok {
		return
	}
	if err := h.CollectionService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_collection_deleted", "collection_id", id, "operator_admin_id", currentAdminID(c))
	response.NoContent(c)
}
