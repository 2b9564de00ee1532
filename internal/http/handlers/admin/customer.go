package admin

import (
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MembershipRequest 修改会员等级请求
type MembershipRequest struct {
	Membership string `json:"membership" binding:"required,oneof=B S G"`
}

// NotifyCustomersRequest 群发通知请求
type NotifyCustomersRequest struct {
	Subject string `json:"subject" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
}

// GetAdminCustomers 后台顾客列表，附带订单数量
func (h *Handler) GetAdminCustomers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, handlershared.DefaultPageSize)
	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		Membership: strings.ToUpper(strings.TrimSpace(c.Query("membership"))),
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.SuccessWithPage(c, customers, response.NewPagination(page, pageSize, total))
}

// GetAdminCustomer 后台顾客详情
func (h *Handler) GetAdminCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.customer_not_found")
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateAdminCustomer 后台更新顾客档案
func (h *Handler) UpdateAdminCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.customer_not_found")
	if !ok {
		return
	}
	var req handlershared.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.CustomerService.Update(id, req.ToPatch())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateCustomerMembership 修改会员等级
func (h *Handler) UpdateCustomerMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.customer_not_found")
	if !ok {
		return
	}
	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.CustomerService.SetMembership(id, req.Membership)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, customer)
}

// DeleteAdminCustomer 删除顾客；存在订单时返回 405
func (h *Handler) DeleteAdminCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.customer_not_found")
	if !ok {
		return
	}
	if err := h.CustomerService.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_customer_deleted", "customer_id", id, "operator_admin_id", currentAdminID(c))
	response.NoContent(c)
}

// NotifyCustomers 向全部顾客群发邮件通知（异步任务）
func (h *Handler) NotifyCustomers(c *gin.Context) {
	var req NotifyCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CustomerService.Notify(service.NotifyInput{
		Subject: req.Subject,
		Message: req.Message,
		Locale:  i18n.ResolveLocale(c),
	}); err != nil {
		respondStoreError(c, err)
		return
	}
	requestLog(c).Infow("admin_customers_notify_enqueued", "operator_admin_id", currentAdminID(c))
	response.Accepted(c, gin.H{"queued": true})
}
