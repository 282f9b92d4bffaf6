package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/models"
)

func setupLikeRepositoryTest(t *testing.T) (*GormLikeRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:like_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Like{}, &models.CommentLike{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewLikeRepository(db), db
}

func TestLikeRepositoryAddIsIdempotent(t *testing.T) {
	repo, _ := setupLikeRepositoryTest(t)

	if err := repo.Add("hello-world", "client-a"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Add("hello-world", "client-a"); err != nil {
		t.Fatalf("repeated add failed: %v", err)
	}
	if err := repo.Add("hello-world", "client-b"); err != nil {
		t.Fatalf("add second client failed: %v", err)
	}

	count, err := repo.Count("hello-world")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}

func TestLikeRepositoryRemove(t *testing.T) {
	repo, _ := setupLikeRepositoryTest(t)

	if err := repo.Add("hello-world", "client-a"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Remove("hello-world", "client-a"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := repo.Remove("hello-world", "client-a"); err != nil {
		t.Fatalf("remove of missing record should succeed: %v", err)
	}

	count, err := repo.Count("hello-world")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}

	has, err := repo.Has("hello-world", "client-a")
	if err != nil {
		t.Fatalf("has failed: %v", err)
	}
	if has {
		t.Fatal("expected has=false after remove")
	}
}

func TestCommentLikeRepositoryCountByComments(t *testing.T) {
	_, db := setupLikeRepositoryTest(t)
	repo := NewCommentLikeRepository(db)

	if err := repo.Add("c1", "client-a"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Add("c1", "client-b"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Add("c2", "client-a"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := repo.Add("c1", "client-a"); err != nil {
		t.Fatalf("repeated add failed: %v", err)
	}

	counts, err := repo.CountByComments([]string{"c1", "c2", "c3"})
	if err != nil {
		t.Fatalf("count by comments failed: %v", err)
	}
	if counts["c1"] != 2 || counts["c2"] != 1 || counts["c3"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
