package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

func setupLikeServiceTest(t *testing.T) *LikeService {
	t.Helper()
	dsn := fmt.Sprintf("file:like_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Like{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewLikeService(repository.NewLikeRepository(db))
}

func TestLikeServiceLikeIsIdempotent(t *testing.T) {
	svc := setupLikeServiceTest(t)
	ctx := context.Background()

	status, err := svc.Like(ctx, "hello-world", "client-a")
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if !status.Liked || status.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", status)
	}

	status, err = svc.Like(ctx, "hello-world", "client-a")
	if err != nil {
		t.Fatalf("repeated like failed: %v", err)
	}
	if status.Count != 1 {
		t.Fatalf("repeated like should not raise count, got %d", status.Count)
	}

	if _, err := svc.Like(ctx, "hello-world", "client-b"); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	got := svc.Status("hello-world", "client-a")
	if got.Count != 2 || !got.Liked {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestLikeServiceUnlikeIsIdempotent(t *testing.T) {
	svc := setupLikeServiceTest(t)
	ctx := context.Background()

	if _, err := svc.Like(ctx, "hello-world", "client-a"); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	status, err := svc.Unlike(ctx, "hello-world", "client-a")
	if err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if status.Liked || status.Count != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", status)
	}

	// 对不存在的记录取消点赞依旧成功
	status, err = svc.Unlike(ctx, "hello-world", "client-a")
	if err != nil {
		t.Fatalf("repeated unlike failed: %v", err)
	}
	if status.Count != 0 {
		t.Fatalf("expected count 0, got %d", status.Count)
	}
}

func TestLikeServiceStatusForUnknownPost(t *testing.T) {
	svc := setupLikeServiceTest(t)

	status := svc.Status("never-liked", "client-a")
	if status.Count != 0 || status.Liked {
		t.Fatalf("expected zero status, got %+v", status)
	}
}
