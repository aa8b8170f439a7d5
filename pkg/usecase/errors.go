package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrProcessNotFound      = errors.New("process not found")
	ErrObservationNotFound  = errors.New("observation not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Transition errors
	ErrIllegalTransition = errors.New("operation not permitted in current state")

	// Validation errors
	ErrTitleRequired        = errors.New("process title is required")
	ErrReviewerRequired     = errors.New("reviewer is required")
	ErrEmptyObservationText = errors.New("observation text must not be empty")
	ErrNoObservationIDs     = errors.New("at least one observation ID is required")
	ErrObservationMismatch  = errors.New("observation does not belong to this process")
	ErrNotEditable          = errors.New("process is not editable in current state")
)

// Context keys for error values
const (
	ProcessIDKey     = "process_id"
	ObservationIDKey = "observation_id"
	StateKey         = "state"
	ActorIDKey       = "actor_id"
)
