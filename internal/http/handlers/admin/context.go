package admin

import (
	"net/url"
	"strings"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "error.unauthorized", "error.internal")
}

func parseIDParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	return handlershared.ParseIDParam(c, name, notFoundKey)
}

func currentAdminID(c *gin.Context) uint {
	value, exists := c.Get("admin_id")
	if !exists {
		return 0
	}
	if adminID, ok := value.(uint); ok {
		return adminID
	}
	return 0
}

func currentIsSuper(c *gin.Context) bool {
	value, exists := c.Get("admin_is_super")
	if !exists {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
