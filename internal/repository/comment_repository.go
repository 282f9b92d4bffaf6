package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListApproved(filter CommentListFilter) ([]models.Comment, int64, error)
	ListApprovedBySlug(postSlug string) ([]models.Comment, error)
	CountApproved(postSlug string) (int64, error)
	UpdateStatus(id, status string) error
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create 创建评论
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListApproved 按排序规则查询已通过的评论。
// most_liked 按点赞数倒序、同数时按时间倒序兜底
func (r *GormCommentRepository) ListApproved(filter CommentListFilter) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).
		Where("post_slug = ? AND status = ?", filter.PostSlug, constants.CommentStatusApproved)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case constants.CommentSortOldest:
		query = query.Order("created_at ASC")
	case constants.CommentSortMostLiked:
		query = query.
			Select("comments.*, (SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS like_total").
			Order("like_total DESC, created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var comments []models.Comment
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListApprovedBySlug 查询文章下全部已通过的评论，按时间正序
func (r *GormCommentRepository) ListApprovedBySlug(postSlug string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_slug = ? AND status = ?", postSlug, constants.CommentStatusApproved).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountApproved 统计文章下已通过的评论数
func (r *GormCommentRepository) CountApproved(postSlug string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("post_slug = ? AND status = ?", postSlug, constants.CommentStatusApproved).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatus 更新评论状态
func (r *GormCommentRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("status", status).Error
}
