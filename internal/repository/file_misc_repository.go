package repository

import (
	"time"

	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

// feedbackDocument feedback.json 的结构
type feedbackDocument struct {
	Entries []models.Feedback `json:"entries"`
}

// FileFeedbackRepository 反馈的文件存储实现
type FileFeedbackRepository struct {
	store *FileStore
	name  string
}

// NewFileFeedbackRepository 创建文件反馈仓库
func NewFileFeedbackRepository(store *FileStore) *FileFeedbackRepository {
	return &FileFeedbackRepository{store: store, name: "feedback.json"}
}

// Create 追加反馈并分配自增 ID
func (r *FileFeedbackRepository) Create(feedback *models.Feedback) error {
	doc := feedbackDocument{}
	return r.store.update(r.name, &doc, func() error {
		var maxID uint
		for _, item := range doc.Entries {
			if item.ID > maxID {
				maxID = item.ID
			}
		}
		feedback.ID = maxID + 1
		doc.Entries = append(doc.Entries, *feedback)
		return nil
	})
}

// GetByID 根据 ID 获取反馈
func (r *FileFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	doc := feedbackDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Entries {
		if doc.Entries[i].ID == id {
			feedback := doc.Entries[i]
			return &feedback, nil
		}
	}
	return nil, nil
}

// summariesDocument summaries.json 的结构：slug -> 摘要
type summariesDocument map[string]models.CommentSummary

// FileSummaryRepository 评论摘要的文件存储实现
type FileSummaryRepository struct {
	store *FileStore
	name  string
}

// NewFileSummaryRepository 创建文件评论摘要仓库
func NewFileSummaryRepository(store *FileStore) *FileSummaryRepository {
	return &FileSummaryRepository{store: store, name: "summaries.json"}
}

// GetBySlug 获取文章的评论摘要
func (r *FileSummaryRepository) GetBySlug(postSlug string) (*models.CommentSummary, error) {
	doc := summariesDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	summary, ok := doc[postSlug]
	if !ok {
		return nil, nil
	}
	return &summary, nil
}

// Upsert 按文章覆盖写入摘要
func (r *FileSummaryRepository) Upsert(summary *models.CommentSummary) error {
	doc := summariesDocument{}
	return r.store.update(r.name, &doc, func() error {
		summary.UpdatedAt = time.Now()
		doc[summary.PostSlug] = *summary
		return nil
	})
}

// NoopTelemetryRepository 文件存储模式下的埋点实现。
// 埋点数据只进日志不落盘，接口行为保持成功
type NoopTelemetryRepository struct{}

// NewNoopTelemetryRepository 创建空埋点仓库
func NewNoopTelemetryRepository() *NoopTelemetryRepository {
	return &NoopTelemetryRepository{}
}

// UpsertSession 仅记录日志
func (r *NoopTelemetryRepository) UpsertSession(session *models.TelemetrySession) error {
	logger.Debugw("telemetry_session_dropped", "session_id", session.SessionID)
	return nil
}

// TouchSession 仅记录日志
func (r *NoopTelemetryRepository) TouchSession(sessionID string, pageViews, events int) error {
	return nil
}

// CreateEvents 仅记录日志
func (r *NoopTelemetryRepository) CreateEvents(events []models.TelemetryEvent) error {
	logger.Debugw("telemetry_events_dropped", "count", len(events))
	return nil
}
