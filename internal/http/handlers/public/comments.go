package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/http/response"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/service"
)

// createCommentRequest 发布评论请求体
type createCommentRequest struct {
	DisplayName string `json:"display_name"`
	Content     string `json:"content"`
	ClientID    string `json:"client_id"`
}

// ListComments 查询文章评论列表
func (h *Handler) ListComments(c *gin.Context) {
	slug := c.Param("slug")
	page, pageSize := pageParams(c, h.Config.Comment.DefaultPageSize)
	sort := c.DefaultQuery("sort", "recent")

	views, total := h.CommentService.List(slug, sort, page, pageSize, clientIDFromQuery(c))
	response.OK(c, gin.H{
		"comments":   views,
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

// CreateComment 发布评论
func (h *Handler) CreateComment(c *gin.Context) {
	slug := c.Param("slug")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	comment, err := h.CommentService.Create(c.Request.Context(), slug, req.DisplayName, req.Content, req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentEmpty), errors.Is(err, service.ErrCommentTooLong):
			response.BadRequest(c, err.Error())
		default:
			logger.Errorw("create_comment_failed", "slug", slug, "error", err)
			response.Internal(c, "failed to create comment")
		}
		return
	}
	h.Metrics.Comments.WithLabelValues(slug).Inc()
	response.Created(c, comment)
}

// LikeComment 点赞评论
func (h *Handler) LikeComment(c *gin.Context) {
	commentID := c.Param("id")
	clientID := clientIDFromBody(c)
	if clientID == "" {
		response.BadRequest(c, "client_id is required")
		return
	}

	status, err := h.CommentService.LikeComment(commentID, clientID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "comment not found")
			return
		}
		logger.Errorw("like_comment_failed", "comment_id", commentID, "error", err)
		response.Internal(c, "failed to record like")
		return
	}
	response.OK(c, status)
}

// UnlikeComment 取消评论点赞
func (h *Handler) UnlikeComment(c *gin.Context) {
	commentID := c.Param("id")
	clientID := clientIDFromBody(c)
	if clientID == "" {
		response.BadRequest(c, "client_id is required")
		return
	}

	status, err := h.CommentService.UnlikeComment(commentID, clientID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "comment not found")
			return
		}
		logger.Errorw("unlike_comment_failed", "comment_id", commentID, "error", err)
		response.Internal(c, "failed to remove like")
		return
	}
	response.OK(c, status)
}

// GetSummary 查询文章评论摘要
func (h *Handler) GetSummary(c *gin.Context) {
	slug := c.Param("slug")
	summary := h.SummaryService.Get(slug)
	if summary == nil {
		response.NotFound(c, "no summary for this post")
		return
	}
	response.OK(c, summary)
}
