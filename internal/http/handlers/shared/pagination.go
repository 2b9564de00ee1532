package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return NormalizePaginationWithDefault(page, pageSize, DefaultPageSize)
}

// NormalizePaginationWithDefault 按指定默认页大小归一化分页参数。
func NormalizePaginationWithDefault(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ParsePagination 从查询参数读取 page/page_size。
func ParsePagination(c *gin.Context, defaultSize int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return NormalizePaginationWithDefault(page, pageSize, defaultSize)
}
