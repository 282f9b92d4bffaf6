package repository

import (
	"sort"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

// commentsDocument comments.json 的结构
type commentsDocument struct {
	Comments []models.Comment `json:"comments"`
}

// FileCommentRepository 评论的文件存储实现
type FileCommentRepository struct {
	store *FileStore
	likes CommentLikeRepository
	name  string
}

// NewFileCommentRepository 创建文件评论仓库。
// most_liked 排序需要点赞数据，点赞仓库由外部注入
func NewFileCommentRepository(store *FileStore, likes CommentLikeRepository) *FileCommentRepository {
	return &FileCommentRepository{store: store, likes: likes, name: "comments.json"}
}

// Create 追加评论
func (r *FileCommentRepository) Create(comment *models.Comment) error {
	doc := commentsDocument{}
	return r.store.update(r.name, &doc, func() error {
		doc.Comments = append(doc.Comments, *comment)
		return nil
	})
}

// GetByID 根据 ID 获取评论
func (r *FileCommentRepository) GetByID(id string) (*models.Comment, error) {
	doc := commentsDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	for i := range doc.Comments {
		if doc.Comments[i].ID == id {
			comment := doc.Comments[i]
			return &comment, nil
		}
	}
	return nil, nil
}

func (r *FileCommentRepository) approvedBySlug(postSlug string) ([]models.Comment, error) {
	doc := commentsDocument{}
	if err := r.store.view(r.name, &doc); err != nil {
		return nil, err
	}
	approved := make([]models.Comment, 0)
	for _, comment := range doc.Comments {
		if comment.PostSlug == postSlug && comment.Status == constants.CommentStatusApproved {
			approved = append(approved, comment)
		}
	}
	return approved, nil
}

// ListApproved 按排序规则查询已通过的评论
func (r *FileCommentRepository) ListApproved(filter CommentListFilter) ([]models.Comment, int64, error) {
	comments, err := r.approvedBySlug(filter.PostSlug)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(comments))

	switch filter.Sort {
	case constants.CommentSortOldest:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		})
	case constants.CommentSortMostLiked:
		ids := make([]string, len(comments))
		for i, comment := range comments {
			ids[i] = comment.ID
		}
		counts, err := r.likes.CountByComments(ids)
		if err != nil {
			return nil, 0, err
		}
		sort.SliceStable(comments, func(i, j int) bool {
			if counts[comments[i].ID] != counts[comments[j].ID] {
				return counts[comments[i].ID] > counts[comments[j].ID]
			}
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		})
	default:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		})
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(comments) {
			return []models.Comment{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(comments) {
			end = len(comments)
		}
		comments = comments[start:end]
	}
	return comments, total, nil
}

// ListApprovedBySlug 查询文章下全部已通过的评论，按时间正序
func (r *FileCommentRepository) ListApprovedBySlug(postSlug string) ([]models.Comment, error) {
	comments, err := r.approvedBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// CountApproved 统计文章下已通过的评论数
func (r *FileCommentRepository) CountApproved(postSlug string) (int64, error) {
	comments, err := r.approvedBySlug(postSlug)
	if err != nil {
		return 0, err
	}
	return int64(len(comments)), nil
}

// UpdateStatus 更新评论状态
func (r *FileCommentRepository) UpdateStatus(id, status string) error {
	doc := commentsDocument{}
	return r.store.update(r.name, &doc, func() error {
		for i := range doc.Comments {
			if doc.Comments[i].ID == id {
				doc.Comments[i].Status = status
				return nil
			}
		}
		return nil
	})
}
