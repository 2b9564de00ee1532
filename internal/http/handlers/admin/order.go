package admin

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// PaymentStatusRequest 修改支付状态请求
type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=P C F"`
}

// AdminListOrders 后台订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, handlershared.DefaultPageSize)
	customerID, ok := handlershared.ParseOptionalUintQuery(c, "customer_id")
	if !ok {
		return
	}
	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		CustomerID:    customerID,
		PaymentStatus: strings.ToUpper(strings.TrimSpace(c.Query("payment_status"))),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 后台订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderPaymentStatus 修改订单支付状态
func (h *Handler) AdminUpdateOrderPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	var req PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := h.OrderService.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_order_payment_status_updated",
		"order_id", id,
		"payment_status", order.PaymentStatus,
		"operator_admin_id", currentAdminID(c),
	)
	response.Success(c, order)
}

// AdminDeleteOrder 删除订单；存在订单项时返回 405
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_not_found")
	if !ok {
		return
	}
	if err := h.OrderService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}
