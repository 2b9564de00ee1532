package models

import "time"

// Product 商品表
type Product struct {
	ID           uint        `gorm:"primarykey" json:"id"`                                     // 主键
	Title        string      `gorm:"size:255;not null;index" json:"title"`                     // 标题
	Slug         string      `gorm:"size:255;not null;index" json:"slug"`                      // 路径标识
	Description  string      `gorm:"type:text" json:"description"`                             // 描述
	UnitPrice    Money       `gorm:"type:decimal(6,2);not null" json:"unit_price"`             // 单价
	Inventory    int         `gorm:"not null;default:0" json:"inventory"`                      // 库存
	LastUpdate   time.Time   `gorm:"autoUpdateTime" json:"last_update"`                        // 最后更新时间
	CollectionID uint        `gorm:"not null;index" json:"collection"`                                                       // 所属集合（受保护）
	Promotions   []Promotion `gorm:"many2many:product_promotions;constraint:OnDelete:CASCADE" json:"promotions,omitempty"` // 促销活动

	Collection *Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// Promotion 促销活动
type Promotion struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Discount    float64 `gorm:"not null;default:0" json:"discount"`
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// ProductImage 商品图片
type ProductImage struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"` // 随商品级联删除
	Image      string    `gorm:"size:512;not null" json:"image"`   // 访问地址
	StorageKey string    `gorm:"size:512" json:"-"`                // 存储侧标识（本地文件名或云端 public_id）
	CreatedAt  time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}

// Review 商品评价
type Review struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"` // 随商品级联删除
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"autoCreateTime" json:"date"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
