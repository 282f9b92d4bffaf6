package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

func setupCommentRepositoryTest(t *testing.T) (*GormCommentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:comment_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Comment{}, &models.CommentLike{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCommentRepository(db), db
}

func createComment(t *testing.T, repo *GormCommentRepository, slug, status string, createdAt time.Time) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		ID:          uuid.NewString(),
		PostSlug:    slug,
		DisplayName: "Brave-Falcon-12345",
		Content:     "nice post",
		Status:      status,
		CreatedAt:   createdAt,
	}
	if err := repo.Create(comment); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	return comment
}

func TestCommentRepositoryListApprovedFiltersStatus(t *testing.T) {
	repo, _ := setupCommentRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	createComment(t, repo, "post-a", constants.CommentStatusApproved, now)
	createComment(t, repo, "post-a", constants.CommentStatusRejected, now.Add(time.Minute))
	createComment(t, repo, "post-b", constants.CommentStatusApproved, now)

	comments, total, err := repo.ListApproved(CommentListFilter{PostSlug: "post-a", Sort: constants.CommentSortRecent})
	if err != nil {
		t.Fatalf("list approved failed: %v", err)
	}
	if total != 1 || len(comments) != 1 {
		t.Fatalf("expected 1 approved comment, got total=%d len=%d", total, len(comments))
	}
	if comments[0].Status != constants.CommentStatusApproved {
		t.Fatalf("unexpected status: %s", comments[0].Status)
	}
}

func TestCommentRepositoryListApprovedSortOrders(t *testing.T) {
	repo, _ := setupCommentRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	oldest := createComment(t, repo, "post-a", constants.CommentStatusApproved, now.Add(-2*time.Hour))
	middle := createComment(t, repo, "post-a", constants.CommentStatusApproved, now.Add(-time.Hour))
	newest := createComment(t, repo, "post-a", constants.CommentStatusApproved, now)

	recent, _, err := repo.ListApproved(CommentListFilter{PostSlug: "post-a", Sort: constants.CommentSortRecent})
	if err != nil {
		t.Fatalf("list recent failed: %v", err)
	}
	if recent[0].ID != newest.ID || recent[2].ID != oldest.ID {
		t.Fatal("recent sort should be newest first")
	}

	asc, _, err := repo.ListApproved(CommentListFilter{PostSlug: "post-a", Sort: constants.CommentSortOldest})
	if err != nil {
		t.Fatalf("list oldest failed: %v", err)
	}
	if asc[0].ID != oldest.ID || asc[1].ID != middle.ID {
		t.Fatal("oldest sort should be oldest first")
	}
}

func TestCommentRepositoryMostLikedSort(t *testing.T) {
	repo, db := setupCommentRepositoryTest(t)
	likes := NewCommentLikeRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	loved := createComment(t, repo, "post-a", constants.CommentStatusApproved, now.Add(-3*time.Hour))
	tieOld := createComment(t, repo, "post-a", constants.CommentStatusApproved, now.Add(-2*time.Hour))
	tieNew := createComment(t, repo, "post-a", constants.CommentStatusApproved, now.Add(-time.Hour))

	for _, client := range []string{"a", "b", "c"} {
		if err := likes.Add(loved.ID, client); err != nil {
			t.Fatalf("add like failed: %v", err)
		}
	}
	if err := likes.Add(tieOld.ID, "a"); err != nil {
		t.Fatalf("add like failed: %v", err)
	}
	if err := likes.Add(tieNew.ID, "a"); err != nil {
		t.Fatalf("add like failed: %v", err)
	}

	comments, _, err := repo.ListApproved(CommentListFilter{PostSlug: "post-a", Sort: constants.CommentSortMostLiked})
	if err != nil {
		t.Fatalf("list most liked failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	if comments[0].ID != loved.ID {
		t.Fatal("most liked comment should come first")
	}
	// 点赞数相同时按时间倒序
	if comments[1].ID != tieNew.ID || comments[2].ID != tieOld.ID {
		t.Fatal("ties should fall back to newest first")
	}
}

func TestCommentRepositoryUpdateStatus(t *testing.T) {
	repo, _ := setupCommentRepositoryTest(t)
	comment := createComment(t, repo, "post-a", constants.CommentStatusApproved, time.Now().UTC())

	if err := repo.UpdateStatus(comment.ID, constants.CommentStatusRejected); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	got, err := repo.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil || got.Status != constants.CommentStatusRejected {
		t.Fatalf("expected rejected status, got %+v", got)
	}

	missing, err := repo.GetByID(uuid.NewString())
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatal("missing comment should return nil")
	}
}
