package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sudharsana-dev/blog-server/internal/models"
)

// LikeRepository 文章点赞数据访问接口
type LikeRepository interface {
	Count(postSlug string) (int64, error)
	Has(postSlug, clientID string) (bool, error)
	Add(postSlug, clientID string) error
	Remove(postSlug, clientID string) error
}

// GormLikeRepository GORM 实现
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建点赞仓库
func NewLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Count 统计文章点赞数
func (r *GormLikeRepository) Count(postSlug string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_slug = ?", postSlug).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Has 判断指定客户端是否已点赞
func (r *GormLikeRepository) Has(postSlug, clientID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_slug = ? AND client_id = ?", postSlug, clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 点赞。依赖唯一索引冲突时跳过，重复调用不累加
func (r *GormLikeRepository) Add(postSlug, clientID string) error {
	like := models.Like{PostSlug: postSlug, ClientID: clientID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Remove 取消点赞，记录不存在时静默成功
func (r *GormLikeRepository) Remove(postSlug, clientID string) error {
	return r.db.Where("post_slug = ? AND client_id = ?", postSlug, clientID).
		Delete(&models.Like{}).Error
}

// CommentLikeRepository 评论点赞数据访问接口
type CommentLikeRepository interface {
	Count(commentID string) (int64, error)
	Has(commentID, clientID string) (bool, error)
	Add(commentID, clientID string) error
	Remove(commentID, clientID string) error
	CountByComments(commentIDs []string) (map[string]int64, error)
}

// GormCommentLikeRepository GORM 实现
type GormCommentLikeRepository struct {
	db *gorm.DB
}

// NewCommentLikeRepository 创建评论点赞仓库
func NewCommentLikeRepository(db *gorm.DB) *GormCommentLikeRepository {
	return &GormCommentLikeRepository{db: db}
}

// Count 统计评论点赞数
func (r *GormCommentLikeRepository) Count(commentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Has 判断指定客户端是否已点赞该评论
func (r *GormCommentLikeRepository) Has(commentID, clientID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).
		Where("comment_id = ? AND client_id = ?", commentID, clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 点赞评论，重复调用不累加
func (r *GormCommentLikeRepository) Add(commentID, clientID string) error {
	like := models.CommentLike{CommentID: commentID, ClientID: clientID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Remove 取消评论点赞，记录不存在时静默成功
func (r *GormCommentLikeRepository) Remove(commentID, clientID string) error {
	return r.db.Where("comment_id = ? AND client_id = ?", commentID, clientID).
		Delete(&models.CommentLike{}).Error
}

// CountByComments 批量统计多条评论的点赞数
func (r *GormCommentLikeRepository) CountByComments(commentIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID string
		Total     int64
	}
	var rows []row
	err := r.db.Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, item := range rows {
		counts[item.CommentID] = item.Total
	}
	return counts, nil
}
