package public

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
)

// GenerateName 生成匿名昵称。模型不可用或输出不合格式时直接报错
func (h *Handler) GenerateName(c *gin.Context) {
	name, err := h.NameService.Generate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorBody{Error: "name generation unavailable"})
		return
	}
	response.OK(c, gin.H{"name": name})
}
