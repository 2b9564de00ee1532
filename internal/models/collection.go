package models

// Collection 商品集合
type Collection struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	Title             string `gorm:"size:255;not null;index" json:"title"`
	FeaturedProductID *uint  `gorm:"index" json:"featured_product"` // 推荐商品，商品删除时置空
}

// TableName 指定表名
func (Collection) TableName() string {
	return "collections"
}
