package models

import "time"

// Subscriber 邮件订阅者表。email 入库前统一小写去空格
type Subscriber struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"not null;uniqueIndex" json:"email"`
	Status         string     `gorm:"not null;default:active" json:"status"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// TableName 指定表名
func (Subscriber) TableName() string {
	return "newsletter_subscribers"
}
