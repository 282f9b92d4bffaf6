package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/config"
	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
	"github.com/sudharsana-dev/blog-server/internal/repository"
)

func setupSummaryTest(t *testing.T, reply string) (*SummaryService, repository.CommentRepository, *int64) {
	t.Helper()
	dsn := fmt.Sprintf("file:summary_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Comment{}, &models.CommentSummary{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response": %q}`, reply)
	}))
	t.Cleanup(server.Close)

	cfg := &config.OllamaConfig{Host: server.URL, Model: "test", TimeoutSeconds: 2, SummaryMinCount: 3}
	comments := repository.NewCommentRepository(db)
	svc := NewSummaryService(comments, repository.NewSummaryRepository(db), NewOllamaClient(cfg), cfg)
	return svc, comments, &calls
}

func seedComments(t *testing.T, repo repository.CommentRepository, slug string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		comment := &models.Comment{
			ID:        uuid.NewString(),
			PostSlug:  slug,
			Content:   fmt.Sprintf("comment %d", i),
			Status:    constants.CommentStatusApproved,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Create(comment); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}
}

func TestSummaryRefreshBelowThresholdSkips(t *testing.T) {
	svc, comments, calls := setupSummaryTest(t, `{"summary": "readers agree"}`)
	seedComments(t, comments, "post-a", 2)

	if err := svc.Refresh(context.Background(), "post-a"); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if *calls != 0 {
		t.Fatal("model should not be called below threshold")
	}
	if svc.Get("post-a") != nil {
		t.Fatal("no summary should be stored below threshold")
	}
}

func TestSummaryRefreshStoresSummary(t *testing.T) {
	svc, comments, _ := setupSummaryTest(t, `Here you go: {"summary": "readers discuss tradeoffs"}`)
	seedComments(t, comments, "post-a", 3)

	if err := svc.Refresh(context.Background(), "post-a"); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	summary := svc.Get("post-a")
	if summary == nil {
		t.Fatal("expected stored summary")
	}
	if summary.Summary != "readers discuss tradeoffs" || summary.CommentCount != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	// 再次刷新覆盖而不是新增
	if err := svc.Refresh(context.Background(), "post-a"); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	if svc.Get("post-a") == nil {
		t.Fatal("summary should survive refresh")
	}
}

func TestSummaryRefreshKeepsOldOnGarbageReply(t *testing.T) {
	svc, comments, _ := setupSummaryTest(t, "sorry, no JSON today")
	seedComments(t, comments, "post-a", 3)

	if err := svc.Refresh(context.Background(), "post-a"); err != nil {
		t.Fatalf("refresh should fail soft: %v", err)
	}
	if svc.Get("post-a") != nil {
		t.Fatal("garbage reply should not store a summary")
	}
}
