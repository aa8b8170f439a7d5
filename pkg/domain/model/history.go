package model

import (
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// FieldDiff records the before/after values of a single field change
type FieldDiff struct {
	Before string
	After  string
}

// HistoryEntry is an immutable audit record of a state-changing action on
// a process. The log is append-only; display order is OccurredAt
// descending but insertion order is the only ordering the log guarantees.
type HistoryEntry struct {
	ID          string
	ProcessID   int64
	ActorID     types.UserID
	ActorName   string
	Action      types.HistoryAction
	Description string
	FieldDiffs  map[string]FieldDiff // key = field name, nil when no diff applies
	OccurredAt  time.Time
}

// Clone returns a deep copy of the history entry
func (h *HistoryEntry) Clone() *HistoryEntry {
	cloned := *h
	if h.FieldDiffs != nil {
		cloned.FieldDiffs = make(map[string]FieldDiff, len(h.FieldDiffs))
		for k, v := range h.FieldDiffs {
			cloned.FieldDiffs[k] = v
		}
	}
	return &cloned
}
