package admin

import (
	"github.com/storefront-next/internal/authz"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

var adminAuthErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_failed"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrAdminExists, Code: response.CodeConflict, Key: "error.admin_exists"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
}

var authzErrorRules = []handlershared.MappedError{
	{Target: authz.ErrUnavailable, Code: response.CodeUnavailable, Key: "error.authz_unavailable"},
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: authz.ErrRoleReserved, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: authz.ErrActionRequired, Code: response.CodeBadRequest, Key: "error.policy_invalid"},
	{Target: authz.ErrAdminRequired, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

var adminErrorRules = handlershared.ConcatMappedErrors(
	adminAuthErrorRules,
	authzErrorRules,
	handlershared.StoreErrorRules,
)

// respondStoreError 按后台规则映射业务错误，未知错误返回 500。
func respondStoreError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, adminErrorRules, response.CodeInternal, "error.internal")
}
