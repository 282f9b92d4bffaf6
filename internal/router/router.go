package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sudharsana-dev/blog-server/internal/cache"
	"github.com/sudharsana-dev/blog-server/internal/config"
	publichandlers "github.com/sudharsana-dev/blog-server/internal/http/handlers/public"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "blog"
	}
	commentRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:comment", redisPrefix),
		WindowSeconds: cfg.Security.CommentRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CommentRateLimit.MaxRequests,
		BlockSeconds:  cfg.Security.CommentRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SecurityHeadersMiddleware(cfg.Server.Mode))
	r.Use(c.Metrics.GinMiddleware())

	// 页面
	r.GET("/", handler.Home)
	r.GET("/post/:slug", handler.Post)
	r.GET("/tag/:tag", handler.Tag)

	// 订阅源与站点地图
	r.GET("/rss.xml", handler.RSS)
	r.GET("/feed.xml", handler.RSS)
	r.GET("/sitemap.xml", handler.Sitemap)

	// 运维端点
	r.GET("/metrics", gin.WrapH(c.Metrics.Handler()))
	r.GET("/health", handler.Health)

	// API 路由组。写请求做来源校验
	api := r.Group("/api")
	api.Use(CSRFOriginMiddleware(cfg.Security.CSRFAllowedOrigins))
	{
		api.GET("/posts/:slug/likes", handler.GetPostLikes)
		api.POST("/posts/:slug/likes", handler.LikePost)
		api.DELETE("/posts/:slug/likes", handler.UnlikePost)

		api.GET("/posts/:slug/comments", handler.ListComments)
		api.POST("/posts/:slug/comments",
			RateLimitMiddleware(cache.Client(), commentRule, KeyByIP),
			handler.CreateComment,
		)
		api.GET("/posts/:slug/summary", handler.GetSummary)

		api.POST("/comments/:id/likes", handler.LikeComment)
		api.DELETE("/comments/:id/likes", handler.UnlikeComment)

		api.POST("/newsletter", handler.Subscribe)
		api.DELETE("/newsletter", handler.Unsubscribe)

		api.POST("/feedback", handler.SubmitFeedback)
		api.GET("/generate-name", handler.GenerateName)
		api.POST("/telemetry", handler.CollectTelemetry)
	}

	return r
}
