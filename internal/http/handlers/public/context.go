package public

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIDBody 携带客户端标识的请求体
type clientIDBody struct {
	ClientID string `json:"client_id"`
}

// clientIDFromQuery 从查询参数读取客户端标识
func clientIDFromQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("client_id"))
}

// clientIDFromBody 从请求体读取客户端标识
func clientIDFromBody(c *gin.Context) string {
	var body clientIDBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.ClientID)
}

// pageParams 解析分页参数
func pageParams(c *gin.Context, defaultPageSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}
