package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/models"
)

// FeedbackRepository 反馈数据访问接口
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByID(id uint) (*models.Feedback, error)
}

// GormFeedbackRepository GORM 实现
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Create 创建反馈
func (r *GormFeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// GetByID 根据 ID 获取反馈
func (r *GormFeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}
