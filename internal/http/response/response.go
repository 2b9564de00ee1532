package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"`          // 业务状态码
	Msg        string      `json:"msg"`                  // 提示消息
	Data       interface{} `json:"data"`                 // 数据内容
	RequestID  string      `json:"request_id,omitempty"` // 请求ID
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, CodeOK, "success", data)
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	write(c, http.StatusCreated, CodeOK, "created", data)
}

// Accepted 异步任务已受理响应
func Accepted(c *gin.Context, data interface{}) {
	write(c, http.StatusAccepted, CodeOK, "accepted", data)
}

// NoContent 删除成功响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
		RequestID:  requestID(c),
	})
}

// Error 错误响应，HTTP 状态码与业务码保持一致
func Error(c *gin.Context, statusCode int, msg string) {
	write(c, HTTPStatus(statusCode), statusCode, msg, nil)
}

// ErrorWithData 错误响应（带数据）
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	write(c, HTTPStatus(statusCode), statusCode, msg, data)
}

// ValidationError 字段级校验错误
func ValidationError(c *gin.Context, msg string, fields map[string]string) {
	ErrorWithData(c, CodeBadRequest, msg, gin.H{"errors": fields})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func write(c *gin.Context, httpStatus, code int, msg string, data interface{}) {
	c.JSON(httpStatus, Response{
		StatusCode: code,
		Msg:        msg,
		Data:       data,
		RequestID:  requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
