package types

import "fmt"

// HistoryAction identifies what kind of state-changing action an audit
// history entry records.
type HistoryAction string

const (
	HistoryActionCreated              HistoryAction = "created"
	HistoryActionModified             HistoryAction = "modified"
	HistoryActionSubmitted            HistoryAction = "submitted"
	HistoryActionApproved             HistoryAction = "approved"
	HistoryActionObservationsAdded    HistoryAction = "observations_added"
	HistoryActionObservationsResolved HistoryAction = "observations_resolved"
)

// AllHistoryActions returns all valid history actions
func AllHistoryActions() []HistoryAction {
	return []HistoryAction{
		HistoryActionCreated,
		HistoryActionModified,
		HistoryActionSubmitted,
		HistoryActionApproved,
		HistoryActionObservationsAdded,
		HistoryActionObservationsResolved,
	}
}

// IsValid checks if the history action is valid
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated,
		HistoryActionModified,
		HistoryActionSubmitted,
		HistoryActionApproved,
		HistoryActionObservationsAdded,
		HistoryActionObservationsResolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the history action
func (a HistoryAction) String() string {
	return string(a)
}

// ParseHistoryAction parses a string into a HistoryAction
func ParseHistoryAction(s string) (HistoryAction, error) {
	action := HistoryAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid history action: %s", s)
	}
	return action, nil
}
