package public

import (
	"context"
	htmltemplate "html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/cache"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/web"
)

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	index, err := h.Library.Index()
	if err != nil {
		logger.Errorw("home_render_failed", "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.Web.RenderHome(c.Writer, index.Posts, index.Tags); err != nil {
		logger.Errorw("home_render_failed", "error", err)
	}
}

// Post 文章页
func (h *Handler) Post(c *gin.Context) {
	slug := c.Param("slug")
	post, err := h.Library.BySlug(slug)
	if err != nil {
		logger.Errorw("post_render_failed", "slug", slug, "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	if post == nil {
		c.String(http.StatusNotFound, "post not found")
		return
	}

	html, err := h.Renderer.Render(post.Content)
	if err != nil {
		logger.Errorw("post_markdown_failed", "slug", slug, "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	h.Metrics.PageViews.WithLabelValues(slug).Inc()

	likeCount, commentCount := h.postStats(c.Request.Context(), slug)
	summaryText := ""
	if summary := h.SummaryService.Get(slug); summary != nil {
		summaryText = summary.Summary
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err = h.Web.RenderPost(c.Writer, web.PostData{
		Post:         *post,
		HTML:         htmltemplate.HTML(html),
		LikeCount:    likeCount,
		CommentCount: commentCount,
		Summary:      summaryText,
	})
	if err != nil {
		logger.Errorw("post_render_failed", "slug", slug, "error", err)
	}
}

// postStats 读取文章互动计数，优先命中缓存快照，
// 未命中时回源并写回。点赞和评论写入路径负责失效
func (h *Handler) postStats(ctx context.Context, slug string) (likes, comments int64) {
	stats, hit, err := cache.GetPostStats(ctx, slug)
	if err != nil {
		logger.Warnw("post_stats_cache_get_failed", "slug", slug, "error", err)
	}
	if hit && stats != nil {
		return stats.Likes, stats.Comments
	}

	likes = h.LikeService.Status(slug, "").Count
	comments = h.CommentService.Count(slug)
	if err := cache.SetPostStats(ctx, slug, &cache.PostStats{Likes: likes, Comments: comments}); err != nil {
		logger.Warnw("post_stats_cache_set_failed", "slug", slug, "error", err)
	}
	return likes, comments
}

// Tag 标签页
func (h *Handler) Tag(c *gin.Context) {
	tag := c.Param("tag")
	posts, err := h.Library.ByTag(tag)
	if err != nil {
		logger.Errorw("tag_render_failed", "tag", tag, "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.Web.RenderTag(c.Writer, tag, posts); err != nil {
		logger.Errorw("tag_render_failed", "tag", tag, "error", err)
	}
}

// RSS 订阅源
func (h *Handler) RSS(c *gin.Context) {
	index, err := h.Library.Index()
	if err != nil {
		logger.Errorw("rss_render_failed", "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.Web.RenderRSS(c.Writer, index.Posts); err != nil {
		logger.Errorw("rss_render_failed", "error", err)
	}
}

// Sitemap 站点地图
func (h *Handler) Sitemap(c *gin.Context) {
	index, err := h.Library.Index()
	if err != nil {
		logger.Errorw("sitemap_render_failed", "error", err)
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.Web.RenderSitemap(c.Writer, index.Posts, index.Tags); err != nil {
		logger.Errorw("sitemap_render_failed", "error", err)
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
