package response

import "net/http"

const (
	CodeOK               = 0
	CodeBadRequest       = 400
	CodeUnauthorized     = 401
	CodeForbidden        = 403
	CodeNotFound         = 404
	CodeMethodNotAllowed = 405
	CodeConflict         = 409
	CodeTooManyRequests  = 429
	CodeInternal         = 500
	CodeUnavailable      = 503
)

// HTTPStatus 业务码对应的 HTTP 状态码
func HTTPStatus(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound,
		CodeMethodNotAllowed, CodeConflict, CodeTooManyRequests:
		return code
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
