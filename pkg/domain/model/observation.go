package model

import (
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// Observation is a reviewer's recorded objection attached to a process.
// Observations are created only by a return-with-observations transition,
// mutated only by resolution, and never deleted.
type Observation struct {
	ID         string
	ProcessID  int64
	AuthorID   types.UserID
	Text       string
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Clone returns a deep copy of the observation
func (o *Observation) Clone() *Observation {
	cloned := *o
	if o.ResolvedAt != nil {
		t := *o.ResolvedAt
		cloned.ResolvedAt = &t
	}
	return &cloned
}
