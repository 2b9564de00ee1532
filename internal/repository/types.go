package repository

import (
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CollectionID uint
	Search       string
	PriceGT      *decimal.Decimal
	PriceLT      *decimal.Decimal
	Ordering     string // unit_price / -unit_price / last_update / -last_update / title
	Inventory    string // low / ok（后台）
	LowThreshold int
}

// CollectionListFilter 查询集合列表的过滤条件
type CollectionListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// CustomerListFilter 查询顾客列表的过滤条件
type CustomerListFilter struct {
	Page       int
	PageSize   int
	Search     string // 姓名前缀
	Membership string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	CustomerID    uint
	PaymentStatus string
}

// TagListFilter 查询标签列表的过滤条件
type TagListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// CollectionStat 集合及其商品数量
type CollectionStat struct {
	models.Collection `gorm:"embedded"`
	ProductsCount     int64 `gorm:"column:products_count" json:"products_count"`
}

// CustomerStat 顾客及其订单数量
type CustomerStat struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	Phone       string       `json:"phone"`
	BirthDate   *models.Date `json:"birth_date"`
	Membership  string       `json:"membership"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	OrdersCount int64        `json:"orders_count"`
}
