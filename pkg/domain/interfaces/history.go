package interfaces

import (
	"context"

	"github.com/grc-lab/riskdesk/pkg/domain/model"
)

type HistoryRepository interface {
	// Append adds an immutable history entry. The log is append-only;
	// entries are never updated or deleted.
	Append(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error)

	// ListByProcess retrieves all history entries for a process ordered
	// by OccurredAt descending.
	ListByProcess(ctx context.Context, processID int64) ([]*model.HistoryEntry, error)
}
