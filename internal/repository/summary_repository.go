package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sudharsana-dev/blog-server/internal/models"
)

// SummaryRepository 评论摘要数据访问接口
type SummaryRepository interface {
	GetBySlug(postSlug string) (*models.CommentSummary, error)
	Upsert(summary *models.CommentSummary) error
}

// GormSummaryRepository GORM 实现
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository 创建评论摘要仓库
func NewSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

// GetBySlug 获取文章的评论摘要
func (r *GormSummaryRepository) GetBySlug(postSlug string) (*models.CommentSummary, error) {
	var summary models.CommentSummary
	if err := r.db.Where("post_slug = ?", postSlug).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// Upsert 按文章覆盖写入摘要
func (r *GormSummaryRepository) Upsert(summary *models.CommentSummary) error {
	summary.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_slug"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"summary":       summary.Summary,
			"comment_count": summary.CommentCount,
			"updated_at":    summary.UpdatedAt,
		}),
	}).Create(summary).Error
}
