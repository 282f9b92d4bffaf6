package service

import (
	"context"

	"github.com/sudharsana-dev/blog-server/internal/cache"
	"github.com/sudharsana-dev/blog-server/internal/logger"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

// LikeService 文章点赞业务服务
type LikeService struct {
	likes repository.LikeRepository
}

// NewLikeService 创建点赞服务
func NewLikeService(likes repository.LikeRepository) *LikeService {
	return &LikeService{likes: likes}
}

// LikeStatus 点赞状态
type LikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// Status 查询文章点赞数和当前客户端的点赞状态。
// 存储故障时降级为零值，读路径不向外暴露 5xx
func (s *LikeService) Status(postSlug, clientID string) *LikeStatus {
	status := &LikeStatus{}

	count, err := s.likes.Count(postSlug)
	if err != nil {
		logger.Warnw("like_count_failed", "slug", postSlug, "error", err)
		return status
	}
	status.Count = count

	if clientID != "" {
		liked, err := s.likes.Has(postSlug, clientID)
		if err != nil {
			logger.Warnw("like_status_failed", "slug", postSlug, "error", err)
			return status
		}
		status.Liked = liked
	}
	return status
}

// Like 点赞，重复点赞幂等。返回写入后的状态
func (s *LikeService) Like(ctx context.Context, postSlug, clientID string) (*LikeStatus, error) {
	if err := s.likes.Add(postSlug, clientID); err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, postSlug, true)
}

// Unlike 取消点赞，记录不存在时幂等成功
func (s *LikeService) Unlike(ctx context.Context, postSlug, clientID string) (*LikeStatus, error) {
	if err := s.likes.Remove(postSlug, clientID); err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, postSlug, false)
}

// afterWrite 写入后失效缓存并重新读取计数，保证返回值与存储一致
func (s *LikeService) afterWrite(ctx context.Context, postSlug string, liked bool) (*LikeStatus, error) {
	if err := cache.DelPostStats(ctx, postSlug); err != nil {
		logger.Warnw("post_stats_cache_del_failed", "slug", postSlug, "error", err)
	}
	count, err := s.likes.Count(postSlug)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Count: count, Liked: liked}, nil
}
