package types

import "fmt"

// NotificationKind mirrors the workflow action that produced a notification
type NotificationKind string

const (
	NotificationKindSubmitted            NotificationKind = "submitted"
	NotificationKindApproved             NotificationKind = "approved"
	NotificationKindObservationsAdded    NotificationKind = "observations_added"
	NotificationKindObservationsResolved NotificationKind = "observations_resolved"
)

// IsValid checks if the notification kind is valid
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindSubmitted,
		NotificationKindApproved,
		NotificationKindObservationsAdded,
		NotificationKindObservationsResolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the notification kind
func (k NotificationKind) String() string {
	return string(k)
}

// ParseNotificationKind parses a string into a NotificationKind
func ParseNotificationKind(s string) (NotificationKind, error) {
	kind := NotificationKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid notification kind: %s", s)
	}
	return kind, nil
}
