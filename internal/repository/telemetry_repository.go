package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sudharsana-dev/blog-server/internal/models"
)

// TelemetryRepository 埋点数据访问接口
type TelemetryRepository interface {
	UpsertSession(session *models.TelemetrySession) error
	TouchSession(sessionID string, pageViews, events int) error
	CreateEvents(events []models.TelemetryEvent) error
}

// GormTelemetryRepository GORM 实现
type GormTelemetryRepository struct {
	db *gorm.DB
}

// NewTelemetryRepository 创建埋点仓库
func NewTelemetryRepository(db *gorm.DB) *GormTelemetryRepository {
	return &GormTelemetryRepository{db: db}
}

// UpsertSession 创建会话，已存在时仅刷新活跃时间
func (r *GormTelemetryRepository) UpsertSession(session *models.TelemetrySession) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_activity": session.LastActivity,
		}),
	}).Create(session).Error
}

// TouchSession 累加会话的浏览与事件计数并刷新活跃时间
func (r *GormTelemetryRepository) TouchSession(sessionID string, pageViews, events int) error {
	return r.db.Model(&models.TelemetrySession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"page_views":    gorm.Expr("page_views + ?", pageViews),
			"events_count":  gorm.Expr("events_count + ?", events),
			"last_activity": time.Now(),
		}).Error
}

// CreateEvents 批量写入埋点事件
func (r *GormTelemetryRepository) CreateEvents(events []models.TelemetryEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}
