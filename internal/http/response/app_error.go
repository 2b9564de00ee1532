package response

import "net/http"

// AppError 接口错误：业务码、已本地化消息与原始错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status 对应的 HTTP 状态码
func (e *AppError) Status() int {
	return HTTPStatus(e.Code)
}

// ServerSide 是否为服务端错误（需要按 error 级别记录）
func (e *AppError) ServerSide() bool {
	return e.Status() >= http.StatusInternalServerError
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
