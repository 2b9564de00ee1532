package admin

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TagRequest 标签请求
type TagRequest struct {
	Label string `json:"label" binding:"required,max=255"`
}

// TaggedItemRequest 打标签请求，tag_id 与 label 二选一
type TaggedItemRequest struct {
	TagID      uint   `json:"tag_id" binding:"required_without=Label"`
	Label      string `json:"label" binding:"max=255"`
	ObjectType string `json:"object_type" binding:"required"`
	ObjectID   uint   `json:"object_id" binding:"required"`
}

// GetAdminTags 标签列表，支持按名称搜索
func (h *Handler) GetAdminTags(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, handlershared.DefaultPageSize)
	tags, total, err := h.TagService.List(repository.TagListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, tags, response.NewPagination(page, pageSize, total))
}

// GetTaggableKinds 可打标签的对象类型
func (h *Handler) GetTaggableKinds(c *gin.Context) {
	response.Success(c, h.TagService.Kinds())
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tag, err := h.TagService.Create(req.Label)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, tag)
}

// UpdateTag 修改标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.tag_not_found")
	if !ok {
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tag, err := h.TagService.Update(id, req.Label)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签及其关联
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.tag_not_found")
	if !ok {
		return
	}
	if err := h.TagService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}

// GetTaggedItems 查询对象上的标签关联
func (h *Handler) GetTaggedItems(c *gin.Context) {
	objectType := strings.TrimSpace(c.Query("object_type"))
	objectID, ok := handlershared.ParseOptionalUintQuery(c, "object_id")
	if !ok {
		return
	}
	missing := make([]string, 0, 2)
	if objectType == "" {
		missing = append(missing, "object_type")
	}
	if objectID == 0 {
		missing = append(missing, "object_id")
	}
	if len(missing) > 0 {
		handlershared.RespondRequiredFields(c, missing...)
		return
	}
	items, err := h.TagService.ItemsFor(objectType, objectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, items)
}

// CreateTaggedItem 为对象打标签
func (h *Handler) CreateTaggedItem(c *gin.Context) {
	var req TaggedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.TagService.Attach(service.TaggedItemInput{
		TagID:      req.TagID,
		Label:      req.Label,
		ObjectType: req.ObjectType,
		ObjectID:   req.ObjectID,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, item)
}

// DeleteTaggedItem 移除标签关联
func (h *Handler) DeleteTaggedItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.tagged_item_not_found")
	if !ok {
		return
	}
	if err := h.TagService.Detach(id); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}
