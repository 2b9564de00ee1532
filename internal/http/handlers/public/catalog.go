package public

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	query, ok := handlershared.ParseProductQuery(c)
	if !ok {
		return
	}
	query.Inventory = ""

	products, total, err := h.ProductService.List(query, false)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(query.Page, query.PageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id, false)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, product)
}

// GetProductTags 获取商品标签
func (h *Handler) GetProductTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	exists, err := h.ProductService.Exists(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !exists {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	tags, err := h.TagService.TagsFor(constants.TaggableProduct, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, tags)
}

// GetCollections 获取集合列表
func (h *Handler) GetCollections(c *gin.Context) {
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

// GetCollection 获取集合详情
func (h *Handler) GetCollection(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.collection_not_found")
	if !ok {
		return
	}
	collection, err := h.CollectionService.Get(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, collection)
}
