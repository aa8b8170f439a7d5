package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/repository/firestore"
	"github.com/grc-lab/riskdesk/pkg/repository/memory"
)

func runObservationTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Observation().Create(ctx, &model.Observation{
			ProcessID: 1,
			AuthorID:  "u-reviewer",
			Text:      "Scope of the control is unclear",
		})
		if err != nil {
			t.Fatalf("failed to create observation: %v", err)
		}
		if created.ID == "" {
			t.Error("expected non-empty ID")
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if created.Resolved {
			t.Error("expected new observation to be unresolved")
		}
	})

	t.Run("Get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Observation().Get(context.Background(), "no-such-id")
		if err == nil {
			t.Fatal("expected error for non-existent observation")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListByProcess returns observations in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		texts := []string{"first", "second", "third"}
		for _, text := range texts {
			if _, err := repo.Observation().Create(ctx, &model.Observation{
				ProcessID: 7,
				AuthorID:  "u-reviewer",
				Text:      text,
			}); err != nil {
				t.Fatalf("failed to create observation: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
		}
		// Another process's observation must not leak in
		if _, err := repo.Observation().Create(ctx, &model.Observation{
			ProcessID: 8,
			AuthorID:  "u-reviewer",
			Text:      "other process",
		}); err != nil {
			t.Fatalf("failed to create observation: %v", err)
		}

		obs, err := repo.Observation().ListByProcess(ctx, 7)
		if err != nil {
			t.Fatalf("failed to list observations: %v", err)
		}
		if len(obs) != len(texts) {
			t.Fatalf("expected %d observations, got %d", len(texts), len(obs))
		}
		for i, text := range texts {
			if obs[i].Text != text {
				t.Errorf("expected obs[%d]=%s, got %s", i, text, obs[i].Text)
			}
		}
	})

	t.Run("ListPending excludes resolved observations", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		kept, err := repo.Observation().Create(ctx, &model.Observation{
			ProcessID: 3,
			AuthorID:  "u-reviewer",
			Text:      "still open",
		})
		if err != nil {
			t.Fatalf("failed to create observation: %v", err)
		}
		resolved, err := repo.Observation().Create(ctx, &model.Observation{
			ProcessID: 3,
			AuthorID:  "u-reviewer",
			Text:      "already handled",
		})
		if err != nil {
			t.Fatalf("failed to create observation: %v", err)
		}

		now := time.Now().UTC()
		resolved.Resolved = true
		resolved.ResolvedAt = &now
		if _, err := repo.Observation().Update(ctx, resolved); err != nil {
			t.Fatalf("failed to resolve observation: %v", err)
		}

		pending, err := repo.Observation().ListPending(ctx, 3)
		if err != nil {
			t.Fatalf("failed to list pending: %v", err)
		}
		if len(pending) != 1 || pending[0].ID != kept.ID {
			t.Errorf("expected only observation %s pending, got %v", kept.ID, pending)
		}

		all, err := repo.Observation().ListByProcess(ctx, 3)
		if err != nil {
			t.Fatalf("failed to list all: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("resolution must not delete observations, got %d", len(all))
		}
	})

	t.Run("Update returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Observation().Update(context.Background(), &model.Observation{ID: "ghost"})
		if err == nil {
			t.Fatal("expected error for non-existent observation")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryObservationRepository(t *testing.T) {
	runObservationTest(t, newMemoryRepository)
}

func TestFirestoreObservationRepository(t *testing.T) {
	runObservationTest(t, newFirestoreRepository)
}
