package public

import "github.com/sudharsana-dev/blog-server/internal/provider"

// Handler 公开接口处理器入口。博客没有后台，所有接口都在这里
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
