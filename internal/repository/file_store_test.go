package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sudharsana-dev/blog-server/internal/constants"
	"github.com/sudharsana-dev/blog-server/internal/models"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create file store failed: %v", err)
	}
	return store
}

func TestFileLikeRepositoryIdempotentAddRemove(t *testing.T) {
	repo := NewFileLikeRepository(newTestFileStore(t))

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

	if err := repo.Remove("hello-world", "client-a"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := repo.Remove("hello-world", "client-a"); err != nil {
		t.Fatalf("remove of missing record should succeed: %v", err)
	}
	count, _ = repo.Count("hello-world")
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	has, err := repo.Has("hello-world", "client-b")
	if err != nil {
		t.Fatalf("has failed: %v", err)
	}
	if !has {
		t.Fatal("expected client-b to still have a like")
	}
}

func TestFileCommentRepositoryMostLikedSort(t *testing.T) {
	store := newTestFileStore(t)
	likes := NewFileCommentLikeRepository(store)
	repo := NewFileCommentRepository(store, likes)
	now := time.Now().UTC().Truncate(time.Second)

	mkComment := func(createdAt time.Time) *models.Comment {
		comment := &models.Comment{
			ID:        uuid.NewString(),
			PostSlug:  "post-a",
			Content:   "hi",
			Status:    constants.CommentStatusApproved,
			CreatedAt: createdAt,
		}
		if err := repo.Create(comment); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
		return comment
	}

	loved := mkComment(now.Add(-3 * time.Hour))
	tieOld := mkComment(now.Add(-2 * time.Hour))
	tieNew := mkComment(now.Add(-time.Hour))

	for _, client := range []string{"a", "b"} {
		if err := likes.Add(loved.ID, client); err != nil {
			t.Fatalf("add like failed: %v", err)
		}
	}

	comments, total, err := repo.ListApproved(CommentListFilter{PostSlug: "post-a", Sort: constants.CommentSortMostLiked})
	if err != nil {
		t.Fatalf("list most liked failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if comments[0].ID != loved.ID || comments[1].ID != tieNew.ID || comments[2].ID != tieOld.ID {
		t.Fatalf("unexpected order: %s %s %s", comments[0].ID, comments[1].ID, comments[2].ID)
	}
}

func TestFileCommentRepositoryUpdateStatusPersists(t *testing.T) {
	store := newTestFileStore(t)
	repo := NewFileCommentRepository(store, NewFileCommentLikeRepository(store))

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostSlug:  "post-a",
		Content:   "hi",
		Status:    constants.CommentStatusApproved,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(comment); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if err := repo.UpdateStatus(comment.ID, constants.CommentStatusRejected); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	// 重新打开存储，验证状态已落盘
	reopened := NewFileCommentRepository(store, NewFileCommentLikeRepository(store))
	got, err := reopened.GetByID(comment.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got == nil || got.Status != constants.CommentStatusRejected {
		t.Fatalf("expected rejected status, got %+v", got)
	}

	count, err := reopened.CountApproved("post-a")
	if err != nil {
		t.Fatalf("count approved failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 approved comments, got %d", count)
	}
}

func TestFileSubscriberRepositoryLifecycle(t *testing.T) {
	repo := NewFileSubscriberRepository(newTestFileStore(t))

	subscriber := &models.Subscriber{
		Email:        "reader@example.com",
		Status:       constants.SubscriberStatusActive,
		SubscribedAt: time.Now().UTC(),
	}
	if err := repo.Create(subscriber); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if subscriber.ID == 0 {
		t.Fatal("expected assigned id")
	}

	if err := repo.Unsubscribe(subscriber.ID); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	got, err := repo.GetByEmail("reader@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if got.Status != constants.SubscriberStatusUnsubscribed {
		t.Fatalf("expected unsubscribed, got %s", got.Status)
	}

	if err := repo.Reactivate(subscriber.ID); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}
	count, err := repo.CountActive()
	if err != nil {
		t.Fatalf("count active failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 active subscriber, got %d", count)
	}
}
