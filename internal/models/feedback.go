package models

import "time"

// Feedback 读者反馈表
type Feedback struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `json:"name"`
	Message      string    `gorm:"not null" json:"message"`
	FeedbackType string    `json:"feedback_type"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (Feedback) TableName() string {
	return "feedback"
}
