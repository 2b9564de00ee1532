package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CartID string `json:"cart_id" binding:"required"`
}

// CreateOrder 将购物车转为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := h.OrderService.CreateFromCart(uid, req.CartID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, order)
}

// ListOrders 当前用户的订单列表，按下单时间倒序
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c, handlershared.DefaultPageSize)
	orders, total, err := h.OrderService.ListForUser(uid, page, pageSize)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 当前用户的订单详情，他人订单视为不存在
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(uid, orderID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, order)
}
