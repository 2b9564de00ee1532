package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 新增地址请求
type AddressRequest struct {
	Street string `json:"street" binding:"required,max=255"`
	City   string `json:"city" binding:"required,max=255"`
}

// GetMyCustomer 获取当前用户的顾客档案，不存在时自动创建
func (h *Handler) GetMyCustomer(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.GetMe(uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateMyCustomer 更新当前用户的顾客档案
func (h *Handler) UpdateMyCustomer(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req handlershared.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.CustomerService.UpdateMe(uid, req.ToPatch())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, customer)
}

// GetMyAddresses 获取当前用户地址列表
func (h *Handler) GetMyAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.CustomerService.ListAddresses(uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, addresses)
}

// CreateMyAddress 新增地址
func (h *Handler) CreateMyAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	address, err := h.CustomerService.AddAddress(uid, service.AddressInput{
		Street: req.Street,
		City:   req.City,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Created(c, address)
}

// DeleteMyAddress 删除地址
func (h *Handler) DeleteMyAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(c, "address_id", "error.address_not_found")
	if !ok {
		return
	}
	if err := h.CustomerService.DeleteAddress(uid, addressID); err != nil {
		respondStoreError(c, err)
		return
	}
	response.NoContent(c)
}
