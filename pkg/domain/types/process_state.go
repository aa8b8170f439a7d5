package types

import "fmt"

// ProcessState represents the review lifecycle state of a risk process
type ProcessState string

const (
	ProcessStateDraft           ProcessState = "DRAFT"
	ProcessStateInReview        ProcessState = "IN_REVIEW"
	ProcessStateApproved        ProcessState = "APPROVED"
	ProcessStateHasObservations ProcessState = "HAS_OBSERVATIONS"
)

// AllProcessStates returns all valid process states
func AllProcessStates() []ProcessState {
	return []ProcessState{
		ProcessStateDraft,
		ProcessStateInReview,
		ProcessStateApproved,
		ProcessStateHasObservations,
	}
}

// IsValid checks if the process state is valid
func (s ProcessState) IsValid() bool {
	switch s {
	case ProcessStateDraft,
		ProcessStateInReview,
		ProcessStateApproved,
		ProcessStateHasObservations:
		return true
	default:
		return false
	}
}

// Normalize returns the state, treating empty as ProcessStateDraft for
// records created before the review workflow existed.
func (s ProcessState) Normalize() ProcessState {
	if s == "" {
		return ProcessStateDraft
	}
	return s
}

// IsTerminal reports whether no further workflow transition is possible
func (s ProcessState) IsTerminal() bool {
	return s == ProcessStateApproved
}

// Editable reports whether the process owner may still modify the record
func (s ProcessState) Editable() bool {
	switch s {
	case ProcessStateDraft, ProcessStateHasObservations:
		return true
	default:
		return false
	}
}

// String returns the string representation of the process state
func (s ProcessState) String() string {
	return string(s)
}

// ParseProcessState parses a string into a ProcessState
func ParseProcessState(s string) (ProcessState, error) {
	state := ProcessState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid process state: %s", s)
	}
	return state, nil
}
