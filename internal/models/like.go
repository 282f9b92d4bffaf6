package models

import "time"

// Like 文章点赞表，(post_slug, client_id) 唯一保证每个客户端最多一条
type Like struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PostSlug  string    `gorm:"not null;uniqueIndex:idx_likes_post_client" json:"post_slug"`
	ClientID  string    `gorm:"not null;uniqueIndex:idx_likes_post_client" json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Like) TableName() string {
	return "likes"
}

// CommentLike 评论点赞表
type CommentLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CommentID string    `gorm:"not null;uniqueIndex:idx_comment_likes_comment_client" json:"comment_id"`
	ClientID  string    `gorm:"not null;uniqueIndex:idx_comment_likes_comment_client" json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (CommentLike) TableName() string {
	return "comment_likes"
}
