package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart 购物车，以 UUID 作为访问凭据
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // UUID
	CreatedAt time.Time `gorm:"index" json:"created_at"`      // 创建时间

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate 生成购物车 ID
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem 购物车项，同一购物车内每个商品仅一行
type CartItem struct {
	ID        uint   `gorm:"primarykey" json:"id"`                                         // 主键
	CartID    string `gorm:"size:36;not null;uniqueIndex:idx_cart_product" json:"cart_id"` // 购物车ID
	ProductID uint   `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`      // 商品ID
	Quantity  int    `gorm:"not null" json:"quantity"`                                     // 数量

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
