package models

import "time"

// Comment 评论表。状态只会由审核任务从 approved 改为 rejected
type Comment struct {
	ID          string    `gorm:"primarykey" json:"id"` // UUID
	PostSlug    string    `gorm:"not null;index" json:"post_slug"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	Content     string    `gorm:"not null" json:"content"`
	Status      string    `gorm:"not null;index;default:approved" json:"status"`
	ClientID    string    `gorm:"index" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	// LikeCount 由查询聚合填充，不落库
	LikeCount int64 `gorm:"-" json:"like_count"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// CommentSummary 评论摘要表，由异步任务预计算
type CommentSummary struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	PostSlug     string    `gorm:"not null;uniqueIndex" json:"post_slug"`
	Summary      string    `gorm:"not null" json:"summary"`
	CommentCount int       `gorm:"not null" json:"comment_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定表名
func (CommentSummary) TableName() string {
	return "comment_summaries"
}
