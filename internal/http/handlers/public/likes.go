package public

import (
	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
	"github.com/sudharsana-dev/blog-server/internal/logger"
)

// GetPostLikes 查询文章点赞状态
func (h *Handler) GetPostLikes(c *gin.Context) {
	slug := c.Param("slug")
	response.OK(c, h.LikeService.Status(slug, clientIDFromQuery(c)))
}

// LikePost 点赞文章
func (h *Handler) LikePost(c *gin.Context) {
	slug := c.Param("slug")
	clientID := clientIDFromBody(c)
	if clientID == "" {
		response.BadRequest(c, "client_id is required")
		return
	}

	status, err := h.LikeService.Like(c.Request.Context(), slug, clientID)
	if err != nil {
		logger.Errorw("like_post_failed", "slug", slug, "error", err)
		response.Internal(c, "failed to record like")
		return
	}
	h.Metrics.Likes.WithLabelValues("like").Inc()
	response.OK(c, status)
}

// UnlikePost 取消文章点赞
func (h *Handler) UnlikePost(c *gin.Context) {
	slug := c.Param("slug")
	clientID := clientIDFromBody(c)
	if clientID == "" {
		response.BadRequest(c, "client_id is required")
		return
	}

	status, err := h.LikeService.Unlike(c.Request.Context(), slug, clientID)
	if err != nil {
		logger.Errorw("unlike_post_failed", "slug", slug, "error", err)
		response.Internal(c, "failed to remove like")
		return
	}
	h.Metrics.Likes.WithLabelValues("unlike").Inc()
	response.OK(c, status)
}
