package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sudharsana-dev/blog-server/internal/cache"
	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/queue"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	comments     repository.CommentRepository
	commentLikes repository.CommentLikeRepository
	queueClient  *queue.Client
	moderation   *ModerationService
	summaries    *SummaryService

	maxLength       int
	defaultPageSize int
}

// NewCommentService 创建评论服务
func NewCommentService(
	comments repository.CommentRepository,
	commentLikes repository.CommentLikeRepository,
	queueClient *queue.Client,
	moderation *ModerationService,
	summaries *SummaryService,
	cfg *config.CommentConfig,
) *CommentService {
	maxLength := 2000
	defaultPageSize := 10
	if cfg != nil {
		if cfg.MaxLength > 0 {
			maxLength = cfg.MaxLength
		}
		if cfg.DefaultPageSize > 0 {
			defaultPageSize = cfg.DefaultPageSize
		}
	}
	return &CommentService{
		comments:        comments,
		commentLikes:    commentLikes,
		queueClient:     queueClient,
		moderation:      moderation,
		summaries:       summaries,
		maxLength:       maxLength,
		defaultPageSize: defaultPageSize,
	}
}

// CommentView 对外返回的评论视图
type CommentView struct {
	models.Comment
	LikedByMe bool `json:"liked_by_me"`
}

// normalizeSort 未知排序值回退到 recent
func normalizeSort(sort string) string {
	switch sort {
	case constants.CommentSortRecent, constants.CommentSortOldest, constants.CommentSortMostLiked:
		return sort
	default:
		return constants.CommentSortRecent
	}
}

// List 查询文章下已通过的评论，附带点赞数。
// 存储故障时降级为空列表，读路径不向外暴露 5xx
func (s *CommentService) List(postSlug, sort string, page, pageSize int, clientID string) ([]CommentView, int64) {
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	comments, total, err := s.comments.ListApproved(repository.CommentListFilter{
		PostSlug: postSlug,
		Sort:     normalizeSort(sort),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Warnw("comment_list_failed", "slug", postSlug, "error", err)
		return []CommentView{}, 0
	}

	ids := make([]string, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}
	counts, err := s.commentLikes.CountByComments(ids)
	if err != nil {
		logger.Warnw("comment_like_counts_failed", "slug", postSlug, "error", err)
		counts = map[string]int64{}
	}

	views := make([]CommentView, len(comments))
	for i, comment := range comments {
		comment.LikeCount = counts[comment.ID]
		views[i] = CommentView{Comment: comment}
		if clientID != "" {
			liked, err := s.commentLikes.Has(comment.ID, clientID)
			if err == nil {
				views[i].LikedByMe = liked
			}
		}
	}
	return views, total
}

// Count 统计文章下已通过的评论数，故障时降级为 0
func (s *CommentService) Count(postSlug string) int64 {
	count, err := s.comments.CountApproved(postSlug)
	if err != nil {
		logger.Warnw("comment_count_failed", "slug", postSlug, "error", err)
		return 0
	}
	return count
}

// Create 发布评论。评论先乐观放行，审核异步进行
func (s *CommentService) Create(ctx context.Context, postSlug, displayName, content, clientID string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if len([]rune(content)) > s.maxLength {
		return nil, ErrCommentTooLong
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = constants.AnonymousDisplayName
	}

	comment := &models.Comment{
		ID:          uuid.NewString(),
		PostSlug:    postSlug,
		DisplayName: displayName,
		Content:     content,
		Status:      constants.CommentStatusApproved,
		ClientID:    clientID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if err := cache.DelPostStats(ctx, postSlug); err != nil {
		logger.Warnw("post_stats_cache_del_failed", "slug", postSlug, "error", err)
	}

	s.dispatchModeration(comment.ID)
	s.dispatchSummarize(postSlug)
	return comment, nil
}

// dispatchModeration 派发异步审核。队列未启用时退化为后台协程
func (s *CommentService) dispatchModeration(commentID string) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueCommentModerate(queue.CommentModeratePayload{CommentID: commentID}); err != nil {
			logger.Errorw("comment_moderate_enqueue_failed", "comment_id", commentID, "error", err)
		}
		return
	}
	if s.moderation == nil {
		return
	}
	go func() {
		if err := s.moderation.ModerateComment(context.Background(), commentID); err != nil {
			logger.Warnw("comment_moderate_failed", "comment_id", commentID, "error", err)
		}
	}()
}

// dispatchSummarize 派发摘要刷新
func (s *CommentService) dispatchSummarize(postSlug string) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueCommentSummarize(queue.CommentSummarizePayload{PostSlug: postSlug}); err != nil {
			logger.Errorw("comment_summarize_enqueue_failed", "slug", postSlug, "error", err)
		}
		return
	}
	if s.summaries == nil {
		return
	}
	go func() {
		if err := s.summaries.Refresh(context.Background(), postSlug); err != nil {
			logger.Warnw("comment_summarize_failed", "slug", postSlug, "error", err)
		}
	}()
}

// LikeComment 点赞评论，重复点赞幂等
func (s *CommentService) LikeComment(commentID, clientID string) (*LikeStatus, error) {
	if err := s.requireComment(commentID); err != nil {
		return nil, err
	}
	if err := s.commentLikes.Add(commentID, clientID); err != nil {
		return nil, err
	}
	count, err := s.commentLikes.Count(commentID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Count: count, Liked: true}, nil
}

// UnlikeComment 取消评论点赞，记录不存在时幂等成功
func (s *CommentService) UnlikeComment(commentID, clientID string) (*LikeStatus, error) {
	if err := s.requireComment(commentID); err != nil {
		return nil, err
	}
	if err := s.commentLikes.Remove(commentID, clientID); err != nil {
		return nil, err
	}
	count, err := s.commentLikes.Count(commentID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Count: count, Liked: false}, nil
}

func (s *CommentService) requireComment(commentID string) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	return nil
}
