package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=32767"`
}

// UpdateCartItemRequest 修改购物车项数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=32767"`
}

// CreateCart 创建购物车
func (h *Handler) CreateCart(c *gin.Context) {
	cart, err := h.CartService.Create()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, cart)
}

// GetCart 获取购物车及其商品
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.Get(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCart 删除购物车
func (h *Handler) DeleteCart(c *gin.Context) {
	if err := h.CartService.Delete(c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}

// GetCartItems 获取购物车项列表
func (h *Handler) GetCartItems(c *gin.Context) {
	items, err := h.CartService.ListItems(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, items)
}

// GetCartItem 获取购物车项
func (h *Handler) GetCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id", "error.cart_item_not_found")
	if !ok {
		return
	}
	item, err := h.CartService.GetItem(c.Param("id"), itemID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, item)
}

// AddCartItem 加购，已在购物车中的商品累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CartService.AddItem(c.Param("id"), service.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id", "error.cart_item_not_found")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.CartService.UpdateItemQuantity(c.Param("id"), itemID, req.Quantity)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id", "error.cart_item_not_found")
	if !ok {
		return
	}
	if err := h.CartService.DeleteItem(c.Param("id"), itemID); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}
