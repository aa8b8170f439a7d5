package model

import (
	"time"

	"github.com/grc-lab/riskdesk/pkg/domain/types"
)

// RiskProcess represents an organizational business process that risks are
// registered against. The process itself passes through the review
// lifecycle before its risks are considered official.
//
// ReviewerID is empty only while the process is in Draft and has never
// been submitted. Once set at submission time it is retained even after a
// return-to-draft, so the same reviewer is re-notified on re-submission.
type RiskProcess struct {
	ID          int64
	Title       string
	Description string
	State       types.ProcessState
	OwnerID     types.UserID
	ReviewerID  types.UserID
	SubmittedAt *time.Time
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EverSubmitted reports whether the process has been submitted at least once
func (p *RiskProcess) EverSubmitted() bool {
	return p.ReviewerID != ""
}

// Clone returns a deep copy of the process
func (p *RiskProcess) Clone() *RiskProcess {
	cloned := *p
	if p.SubmittedAt != nil {
		t := *p.SubmittedAt
		cloned.SubmittedAt = &t
	}
	if p.ApprovedAt != nil {
		t := *p.ApprovedAt
		cloned.ApprovedAt = &t
	}
	return &cloned
}
