package admin

import "github.com/storefront-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器用于所有需要管理员身份的 API，包括挂在 /store 下的写操作。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
