package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type historyRepository struct {
	mu      sync.RWMutex
	entries []*model.HistoryEntry
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := entry.Clone()
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.OccurredAt.IsZero() {
		created.OccurredAt = time.Now().UTC()
	}

	r.entries = append(r.entries, created)
	return created.Clone(), nil
}

func (r *historyRepository) ListByProcess(ctx context.Context, processID int64) ([]*model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.HistoryEntry
	for _, entry := range r.entries {
		if entry.ProcessID == processID {
			result = append(result, entry.Clone())
		}
	}

	// Newest first for display
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})

	return result, nil
}
