package model

import (
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// Notification is a targeted, dismissible message produced by the review
// workflow. Read state is mutated independently of the workflow.
type Notification struct {
	ID            string
	TargetUserID  types.UserID
	Kind          types.NotificationKind
	Title         string
	Body          string
	ProcessID     int64
	ObservationID string // set only for observation-related kinds
	Read          bool
	CreatedAt     time.Time
}

// Clone returns a copy of the notification
func (n *Notification) Clone() *Notification {
	cloned := *n
	return &cloned
}
