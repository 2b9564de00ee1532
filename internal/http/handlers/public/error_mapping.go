package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

// respondStoreError 按商城通用规则映射业务错误，未知错误返回 500。
func respondStoreError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, handlershared.StoreErrorRules, response.CodeInternal, "error.internal")
}

var userAuthErrorRules = handlershared.ConcatMappedErrors(
	[]handlershared.MappedError{
		{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_failed"},
		{Target: service.ErrUserDisabled, Code: response.CodeForbidden, Key: "error.user_disabled"},
	},
	handlershared.StoreErrorRules,
)

func respondUserAuthError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.internal")
}
