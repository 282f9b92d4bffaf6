package cache

import (
	"context"
	"fmt"
	"time"
)

const postStatsCacheTTL = 30 * time.Second

// PostStats 文章互动数据快照。点赞和评论数读多写少，
// Redis 可用时短暂缓存，降低数据库压力
type PostStats struct {
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
	UpdatedAt int64 `json:"updated_at"`
}

func postStatsKey(slug string) string {
	return fmt.Sprintf("stats:post:%s", slug)
}

// GetPostStats 获取文章互动数据快照
func GetPostStats(ctx context.Context, slug string) (*PostStats, bool, error) {
	if slug == "" {
		return nil, false, nil
	}
	var stats PostStats
	hit, err := GetJSON(ctx, postStatsKey(slug), &stats)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &stats, true, nil
}

// SetPostStats 写入文章互动数据快照
func SetPostStats(ctx context.Context, slug string, stats *PostStats) error {
	if slug == "" || stats == nil {
		return nil
	}
	stats.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, postStatsKey(slug), stats, postStatsCacheTTL)
}

// DelPostStats 删除文章互动数据快照，互动写入后调用
func DelPostStats(ctx context.Context, slug string) error {
	if slug == "" {
		return nil
	}
	return Del(ctx, postStatsKey(slug))
}
