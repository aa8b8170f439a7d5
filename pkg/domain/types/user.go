package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// UserID represents a unique identifier for an actor
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// Role gates which workflow operations an actor's surface may invoke.
// Role-appropriateness is enforced by the calling surface; the workflow
// itself only checks state legality.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleReviewer, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanReview reports whether the role may approve or return a process
func (r Role) CanReview() bool {
	return r == RoleReviewer || r == RoleAdmin
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
