package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 站点指标集合
type Metrics struct {
	registry *prometheus.Registry

	PageViews         *prometheus.CounterVec
	Likes             *prometheus.CounterVec
	Comments          *prometheus.CounterVec
	NewsletterSignups prometheus.Counter
	Feedback          prometheus.Counter

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// New 创建指标集合并注册到独立的 registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		PageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_page_views_total",
			Help: "Total page views by post slug.",
		}, []string{"slug"}),
		Likes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_likes_total",
			Help: "Total like toggles by action.",
		}, []string{"action"}),
		Comments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_comments_total",
			Help: "Total comments created by post slug.",
		}, []string{"slug"}),
		NewsletterSignups: factory.NewCounter(prometheus.CounterOpts{
			Name: "blog_newsletter_signups_total",
			Help: "Total newsletter signups.",
		}),
		Feedback: factory.NewCounter(prometheus.CounterOpts{
			Name: "blog_feedback_total",
			Help: "Total feedback submissions.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
	}
}

// Handler 暴露 /metrics 的 HTTP 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware 记录请求量与耗时。
// path 维度使用路由模板而非原始 URL，避免高基数标签
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
