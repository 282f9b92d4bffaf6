package provider

import (
	"github.com/sudharsana-dev/blog-server/internal/cache"
	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/content"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/markdown"
	"github.com/sudharsana-dev/blog-server/internal/metrics"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/queue"
	"github.com/sudharsana-dev/blog-server/internal/repository"
	"github.com/sudharsana-dev/blog-server/internal/service"
	"github.com/sudharsana-dev/blog-server/internal/web"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Content
	Library  *content.Library
	Renderer *markdown.Renderer
	Web      *web.Engine

	// Repositories
	LikeRepo        repository.LikeRepository
	CommentRepo     repository.CommentRepository
	CommentLikeRepo repository.CommentLikeRepository
	SubscriberRepo  repository.SubscriberRepository
	FeedbackRepo    repository.FeedbackRepository
	TelemetryRepo   repository.TelemetryRepository
	SummaryRepo     repository.SummaryRepository

	// Services
	LikeService       *service.LikeService
	CommentService    *service.CommentService
	ModerationService *service.ModerationService
	SummaryService    *service.SummaryService
	NameService       *service.NameService
	NewsletterService *service.NewsletterService
	FeedbackService   *service.FeedbackService
	TelemetryService  *service.TelemetryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	engine, err := web.NewEngine(&cfg.Site)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     metrics.New(),
		Library:     content.NewLibrary(cfg.Content.Dir, cfg.Content.ExcerptLength),
		Renderer:    markdown.New(),
		Web:         engine,
	}

	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	c.initServices()
	return c, nil
}

// initRepositories 按 storage.backend 选择存储实现
func (c *Container) initRepositories() error {
	if c.Config.Storage.Backend == constants.StorageBackendFile {
		store, err := repository.NewFileStore(c.Config.Storage.File.Dir)
		if err != nil {
			return err
		}
		commentLikes := repository.NewFileCommentLikeRepository(store)
		c.LikeRepo = repository.NewFileLikeRepository(store)
		c.CommentLikeRepo = commentLikes
		c.CommentRepo = repository.NewFileCommentRepository(store, commentLikes)
		c.SubscriberRepo = repository.NewFileSubscriberRepository(store)
		c.FeedbackRepo = repository.NewFileFeedbackRepository(store)
		c.SummaryRepo = repository.NewFileSummaryRepository(store)
		c.TelemetryRepo = repository.NewNoopTelemetryRepository()
		logger.Infow("storage_backend_selected", "backend", "file", "dir", c.Config.Storage.File.Dir)
		return nil
	}

	db := models.DB
	c.LikeRepo = repository.NewLikeRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.CommentLikeRepo = repository.NewCommentLikeRepository(db)
	c.SubscriberRepo = repository.NewSubscriberRepository(db)
	c.FeedbackRepo = repository.NewFeedbackRepository(db)
	c.TelemetryRepo = repository.NewTelemetryRepository(db)
	c.SummaryRepo = repository.NewSummaryRepository(db)
	logger.Infow("storage_backend_selected", "backend", "database", "driver", c.Config.Database.Driver)
	return nil
}

func (c *Container) initServices() {
	llm := service.NewOllamaClient(&c.Config.Ollama)

	c.ModerationService = service.NewModerationService(c.CommentRepo, llm)
	c.SummaryService = service.NewSummaryService(c.CommentRepo, c.SummaryRepo, llm, &c.Config.Ollama)
	c.NameService = service.NewNameService(llm)
	c.LikeService = service.NewLikeService(c.LikeRepo)
	c.CommentService = service.NewCommentService(
		c.CommentRepo,
		c.CommentLikeRepo,
		c.QueueClient,
		c.ModerationService,
		c.SummaryService,
		&c.Config.Comment,
	)
	c.NewsletterService = service.NewNewsletterService(c.SubscriberRepo)
	c.FeedbackService = service.NewFeedbackService(c.FeedbackRepo, c.QueueClient, &c.Config.Gotify)
	c.TelemetryService = service.NewTelemetryService(c.TelemetryRepo)
}
