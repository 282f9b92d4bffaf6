package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

// SubscriberRepository 订阅者数据访问接口
type SubscriberRepository interface {
	GetByEmail(email string) (*models.Subscriber, error)
	Create(subscriber *models.Subscriber) error
	Reactivate(id uint) error
	Unsubscribe(id uint) error
	CountActive() (int64, error)
}

// GormSubscriberRepository GORM 实现
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository 创建订阅者仓库
func NewSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// GetByEmail 根据邮箱获取订阅者，邮箱需提前归一化
func (r *GormSubscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	var subscriber models.Subscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Create 创建订阅记录
func (r *GormSubscriberRepository) Create(subscriber *models.Subscriber) error {
	return r.db.Create(subscriber).Error
}

// Reactivate 恢复已退订的订阅
func (r *GormSubscriberRepository) Reactivate(id uint) error {
	return r.db.Model(&models.Subscriber{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          constants.SubscriberStatusActive,
			"subscribed_at":   time.Now(),
			"unsubscribed_at": nil,
		}).Error
}

// Unsubscribe 退订
func (r *GormSubscriberRepository) Unsubscribe(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Subscriber{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          constants.SubscriberStatusUnsubscribed,
			"unsubscribed_at": &now,
		}).Error
}

// CountActive 统计有效订阅数
func (r *GormSubscriberRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscriber{}).
		Where("status = ?", constants.SubscriberStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
