package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.unauthorized", "error.internal")
}

func parseIDParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	return handlershared.ParseIDParam(c, name, notFoundKey)
}
