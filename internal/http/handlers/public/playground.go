package public

import (
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PlaygroundHello 调用上游慢接口并返回其结果，结果带缓存
func (h *Handler) PlaygroundHello(c *gin.Context) {
	data, err := h.PlaygroundService.Hello(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	response.Success(c, data)
}
