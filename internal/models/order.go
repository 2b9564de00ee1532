package models

import "time"

// Order 订单表
type Order struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                    // 主键
	PlacedAt      time.Time `gorm:"autoCreateTime;index" json:"placed_at"`                   // 下单时间
	PaymentStatus string    `gorm:"size:1;not null;default:'P';index" json:"payment_status"` // 支付状态 P/C/F
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`                       // 顾客ID（受保护）

	Customer *Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"customer,omitempty"` // 顾客
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT" json:"items,omitempty"`       // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表，单价为下单时快照
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`                         // 主键
	OrderID   uint  `gorm:"index;not null" json:"order_id"`               // 订单ID
	ProductID uint  `gorm:"index;not null" json:"product_id"`             // 商品ID
	Quantity  int   `gorm:"not null" json:"quantity"`                     // 数量
	UnitPrice Money `gorm:"type:decimal(6,2);not null" json:"unit_price"` // 单价快照

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
