package repository

import (
	"time"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

// newsletterDocument newsletter.json 的结构
type newsletterDocument struct {
	Subscribers []models.Subscriber `json:"subscribers"`
}

// FileSubscriberRepository 订阅者的文件存储实现
type FileSubscriberRepository struct {
	store *FileStore
	name  string
}

// NewFileSubscriberRepository 创建文件订阅者仓库
func NewFileSubscriberRepository(store *FileStore) *FileSubscriberRepository {
	return &FileSubscriberRepository{store: store, name: "newsletter.json"}
}

// GetByEmail 根据邮箱获取订阅者
func (r *FileSubscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	doc := newsletterDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Subscribers {
		if doc.Subscribers[i].Email == email {
			subscriber := doc.Subscribers[i]
			return &subscriber, nil
		}
	}
	return nil, nil
}

// Create 追加订阅记录并分配自增 ID
func (r *FileSubscriberRepository) Create(subscriber *models.Subscriber) error {
	doc := newsletterDocument{}
	return r.store.update(r.name, &doc, func() error {
		var maxID uint
		for _, item := range doc.Subscribers {
			if item.ID > maxID {
				maxID = item.ID
			}
		}
		subscriber.ID = maxID + 1
		doc.Subscribers = append(doc.Subscribers, *subscriber)
		return nil
	})
}

// Reactivate 恢复已退订的订阅
func (r *FileSubscriberRepository) Reactivate(id uint) error {
	doc := newsletterDocument{}
	return r.store.update(r.name, &doc, func() error {
		for i := range doc.Subscribers {
			if doc.Subscribers[i].ID == id {
				doc.Subscribers[i].Status = constants.SubscriberStatusActive
				doc.Subscribers[i].SubscribedAt = time.Now()
				doc.Subscribers[i].UnsubscribedAt = nil
				return nil
			}
		}
		return nil
	})
}

// Unsubscribe 退订
func (r *FileSubscriberRepository) Unsubscribe(id uint) error {
	doc := newsletterDocument{}
	return r.store.update(r.name, &doc, func() error {
		for i := range doc.Subscribers {
			if doc.Subscribers[i].ID == id {
				now := time.Now()
				doc.Subscribers[i].Status = constants.SubscriberStatusUnsubscribed
				doc.Subscribers[i].UnsubscribedAt = &now
				return nil
			}
		}
		return nil
	})
}

// CountActive 统计有效订阅数
func (r *FileSubscriberRepository) CountActive() (int64, error) {
	doc := newsletterDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return 0, err
	}
	var count int64
	for _, item := range doc.Subscribers {
		if item.Status == constants.SubscriberStatusActive {
			count++
		}
	}
	return count, nil
}
