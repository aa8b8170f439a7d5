package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
	"github.com/grc-lab/riskdesk/pkg/domain/model"
	"github.com/grc-lab/riskdesk/pkg/domain/types"
	"github.com/grc-lab/riskdesk/pkg/repository/firestore"
	"github.com/grc-lab/riskdesk/pkg/repository/memory"
)

func runProcessTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential IDs", func(t *testing.T) {
		repo := newRepo(t)

		first := mustCreateProcess(t, repo, &model.RiskProcess{
			Title:       "Vendor onboarding",
			Description: "Third-party vendor intake and screening",
			OwnerID:     "u-owner",
		})

		if first.ID != 1 {
			t.Errorf("expected ID=1, got %d", first.ID)
		}
		if first.State != types.ProcessStateDraft {
			t.Errorf("expected state=%s, got %s", types.ProcessStateDraft, first.State)
		}
		if first.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if first.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}

		second := mustCreateProcess(t, repo, &model.RiskProcess{
			Title:   "Payroll run",
			OwnerID: "u-owner",
		})
		if second.ID != 2 {
			t.Errorf("expected ID=2, got %d", second.ID)
		}
	})

	t.Run("Get retrieves existing process", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreateProcess(t, repo, &model.RiskProcess{
			Title:       "Data retention",
			Description: "Retention and deletion of customer records",
			OwnerID:     "u-owner",
		})

		retrieved, err := repo.Process().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get process: %v", err)
		}
		if retrieved.Title != created.Title {
			t.Errorf("expected title=%s, got %s", created.Title, retrieved.Title)
		}
		if retrieved.OwnerID != created.OwnerID {
			t.Errorf("expected owner=%s, got %s", created.OwnerID, retrieved.OwnerID)
		}
		if !retrieved.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected createdAt=%v, got %v", created.CreatedAt, retrieved.CreatedAt)
		}
	})

	t.Run("Get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Process().Get(context.Background(), 99999)
		if err == nil {
			t.Fatal("expected error for non-existent process")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListByState filters", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		draft := mustCreateProcess(t, repo, &model.RiskProcess{Title: "A", OwnerID: "u-owner"})
		inReview := mustCreateProcess(t, repo, &model.RiskProcess{Title: "B", OwnerID: "u-owner"})
		inReview.State = types.ProcessStateInReview
		if _, err := repo.Process().Update(ctx, inReview); err != nil {
			t.Fatalf("failed to update process: %v", err)
		}

		drafts, err := repo.Process().ListByState(ctx, types.ProcessStateDraft)
		if err != nil {
			t.Fatalf("failed to list drafts: %v", err)
		}
		if len(drafts) != 1 || drafts[0].ID != draft.ID {
			t.Errorf("expected only process %d in draft, got %v", draft.ID, drafts)
		}

		reviews, err := repo.Process().ListByState(ctx, types.ProcessStateInReview)
		if err != nil {
			t.Fatalf("failed to list in-review: %v", err)
		}
		if len(reviews) != 1 || reviews[0].ID != inReview.ID {
			t.Errorf("expected only process %d in review, got %v", inReview.ID, reviews)
		}
	})

	t.Run("Update replaces fields and preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreateProcess(t, repo, &model.RiskProcess{
			Title:   "Original",
			OwnerID: "u-owner",
		})

		created.Title = "Renamed"
		created.State = types.ProcessStateInReview
		created.ReviewerID = "u-reviewer"

		updated, err := repo.Process().Update(ctx, created)
		if err != nil {
			t.Fatalf("failed to update process: %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("expected title=Renamed, got %s", updated.Title)
		}
		if updated.ReviewerID != "u-reviewer" {
			t.Errorf("expected reviewer=u-reviewer, got %s", updated.ReviewerID)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected createdAt preserved, got %v", updated.CreatedAt)
		}
	})

	t.Run("Update returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Process().Update(context.Background(), &model.RiskProcess{ID: 424242, Title: "Ghost"})
		if err == nil {
			t.Fatal("expected error for non-existent process")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustCreateProcess(t, repo, &model.RiskProcess{Title: "Immutable", OwnerID: "u-owner"})
		created.Title = "Mutated locally"

		stored, err := repo.Process().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get process: %v", err)
		}
		if stored.Title != "Immutable" {
			t.Errorf("stored record was mutated through a returned copy: %s", stored.Title)
		}
	})
}

func TestMemoryProcessRepository(t *testing.T) {
	runProcessTest(t, newMemoryRepository)
}

func TestFirestoreProcessRepository(t *testing.T) {
	runProcessTest(t, newFirestoreRepository)
}
