package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
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

func setupModerationTest(t *testing.T, llmReply string, llmStatus int) (*ModerationService, repository.CommentRepository, *models.Comment) {
	t.Helper()
	dsn := fmt.Sprintf("file:moderation_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Comment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	repo := repository.NewCommentRepository(db)

	comment := &models.Comment{
		ID:          uuid.NewString(),
		PostSlug:    "post-a",
		DisplayName: "Bob",
		Content:     "some comment",
		Status:      constants.CommentStatusApproved,
		CreatedAt:   time.Now().UTC(),
	}
	if err := repo.Create(comment); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if llmStatus != http.StatusOK {
			w.WriteHeader(llmStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response": %q}`, llmReply)
	}))
	t.Cleanup(server.Close)

	llm := NewOllamaClient(&config.OllamaConfig{Host: server.URL, Model: "test", TimeoutSeconds: 2})
	return NewModerationService(repo, llm), repo, comment
}

func TestModerationRejectsHarmfulComment(t *testing.T) {
	reply := `Sure, here is my verdict: {"is_harmful": true, "reason": "spam"} hope that helps`
	svc, repo, comment := setupModerationTest(t, reply, http.StatusOK)

	if err := svc.ModerateComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}

	got, err := repo.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get comment failed: %v", err)
	}
	if got.Status != constants.CommentStatusRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
}

func TestModerationKeepsHarmlessComment(t *testing.T) {
	svc, repo, comment := setupModerationTest(t, `{"is_harmful": false, "reason": "fine"}`, http.StatusOK)

	if err := svc.ModerateComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}

	got, _ := repo.GetByID(comment.ID)
	if got.Status != constants.CommentStatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
}

func TestModerationFailsOpenOnServerError(t *testing.T) {
	svc, repo, comment := setupModerationTest(t, "", http.StatusInternalServerError)

	if err := svc.ModerateComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("moderation should fail open, got %v", err)
	}

	got, _ := repo.GetByID(comment.ID)
	if got.Status != constants.CommentStatusApproved {
		t.Fatalf("expected approved after failure, got %s", got.Status)
	}
}

func TestModerationFailsOpenOnGarbageReply(t *testing.T) {
	svc, repo, comment := setupModerationTest(t, "I cannot decide, sorry!", http.StatusOK)

	if err := svc.ModerateComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}

	got, _ := repo.GetByID(comment.ID)
	if got.Status != constants.CommentStatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
}

func TestModerationSkipsAlreadyRejected(t *testing.T) {
	svc, repo, comment := setupModerationTest(t, `{"is_harmful": true, "reason": "spam"}`, http.StatusOK)

	if err := repo.UpdateStatus(comment.ID, constants.CommentStatusRejected); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if err := svc.ModerateComment(context.Background(), comment.ID); err != nil {
		t.Fatalf("moderate failed: %v", err)
	}
	if err := svc.ModerateComment(context.Background(), uuid.NewString()); err != nil {
		t.Fatalf("missing comment should not error: %v", err)
	}
}

func TestExtractJSONBlock(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{`prefix {"a": 1} suffix`, `{"a": 1}`, true},
		{`{"outer": {"inner": true}} tail`, `{"outer": {"inner": true}}`, true},
		{`no json here`, ``, false},
		{`{"unclosed": true`, ``, false},
	}
	for _, tc := range cases {
		got, ok := extractJSONBlock(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("extractJSONBlock(%q) = %q,%v want %q,%v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
