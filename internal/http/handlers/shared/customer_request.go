package shared

import (
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"
)

// CustomerUpdateRequest 顾客档案更新请求，未提供的字段保持不变
type CustomerUpdateRequest struct {
	FirstName  *string      `json:"first_name" binding:"omitempty,max=255"`
	LastName   *string      `json:"last_name" binding:"omitempty,max=255"`
	Phone      *string      `json:"phone" binding:"omitempty,max=255"`
	BirthDate  *models.Date `json:"birth_date"`
	Membership *string      `json:"membership" binding:"omitempty,oneof=B S G"`
}

// ToPatch 转换为 service 层更新输入。
func (r CustomerUpdateRequest) ToPatch() service.CustomerPatch {
	return service.CustomerPatch{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		BirthDate:  r.BirthDate,
		Membership: r.Membership,
	}
}
