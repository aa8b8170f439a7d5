package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/repository/firestore"
	"github.com/grc-lab/riskdesk/pkg/repository/memory"
)

func runNotificationTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and starts unread", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Notification().Create(ctx, &model.Notification{
			TargetUserID: "u-reviewer",
			Kind:         types.NotificationKindSubmitted,
			Title:        "Process submitted for review",
			ProcessID:    1,
		})
		if err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
		if created.ID == "" {
			t.Error("expected non-empty ID")
		}
		if created.Read {
			t.Error("expected new notification to be unread")
		}
	})

	t.Run("ListByTarget filters by user and read state", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Notification().Create(ctx, &model.Notification{
			TargetUserID: "u-reviewer",
			Kind:         types.NotificationKindSubmitted,
			Title:        "first",
			ProcessID:    1,
		})
		if err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
		second, err := repo.Notification().Create(ctx, &model.Notification{
			TargetUserID: "u-reviewer",
			Kind:         types.NotificationKindObservationsResolved,
			Title:        "second",
			ProcessID:    2,
		})
		if err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
		if _, err := repo.Notification().Create(ctx, &model.Notification{
			TargetUserID: "u-other",
			Kind:         types.NotificationKindApproved,
			Title:        "someone else",
			ProcessID:    3,
		}); err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}

		all, err := repo.Notification().ListByTarget(ctx, "u-reviewer", false)
		if err != nil {
			t.Fatalf("failed to list notifications: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(all))
		}
		// Newest first
		if all[0].ID != second.ID || all[1].ID != first.ID {
			t.Errorf("expected newest-first ordering, got %s then %s", all[0].Title, all[1].Title)
		}

		if _, err := repo.Notification().MarkRead(ctx, first.ID); err != nil {
			t.Fatalf("failed to mark read: %v", err)
		}

		unread, err := repo.Notification().ListByTarget(ctx, "u-reviewer", true)
		if err != nil {
			t.Fatalf("failed to list unread: %v", err)
		}
		if len(unread) != 1 || unread[0].ID != second.ID {
			t.Errorf("expected only unread notification %s, got %v", second.ID, unread)
		}
	})

	t.Run("MarkRead persists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Notification().Create(ctx, &model.Notification{
			TargetUserID: "u-owner",
			Kind:         types.NotificationKindApproved,
			Title:        "Process approved",
			ProcessID:    4,
		})
		if err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}

		marked, err := repo.Notification().MarkRead(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to mark read: %v", err)
		}
		if !marked.Read {
			t.Error("expected notification to be read")
		}

		fetched, err := repo.Notification().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get notification: %v", err)
		}
		if !fetched.Read {
			t.Error("expected read state to persist")
		}
	})

	t.Run("MarkRead returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Notification().MarkRead(context.Background(), "ghost")
		if err == nil {
			t.Fatal("expected error for non-existent notification")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryNotificationRepository(t *testing.T) {
	runNotificationTest(t, newMemoryRepository)
}

func TestFirestoreNotificationRepository(t *testing.T) {
	runNotificationTest(t, newFirestoreRepository)
}
