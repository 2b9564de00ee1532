package shared

import (
	"strings"

	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductListPageSize 商品列表默认页大小
const ProductListPageSize = 10

// ParseProductQuery 解析商品列表的过滤、搜索、排序与分页参数。
func ParseProductQuery(c *gin.Context) (service.ProductQuery, bool) {
	page, pageSize := ParsePagination(c, ProductListPageSize)
	query := service.ProductQuery{
		Page:      page,
		PageSize:  pageSize,
		Search:    strings.TrimSpace(c.Query("search")),
		Ordering:  strings.TrimSpace(c.Query("ordering")),
		Inventory: strings.TrimSpace(c.Query("inventory")),
	}

	collectionID, ok := ParseOptionalUintQuery(c, "collection_id")
	if !ok {
		return query, false
	}
	query.CollectionID = collectionID

	fields := make(map[string]string)
	if raw := strings.TrimSpace(c.Query("unit_price__gt")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			fields["unit_price__gt"] = validationMessage(c, "validation.invalid")
		} else {
			query.PriceGT = &value
		}
	}
	if raw := strings.TrimSpace(c.Query("unit_price__lt")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			fields["unit_price__lt"] = validationMessage(c, "validation.invalid")
		} else {
			query.PriceLT = &value
		}
	}
	if len(fields) > 0 {
		RespondValidation(c, fields)
		return query, false
	}
	return query, true
}
