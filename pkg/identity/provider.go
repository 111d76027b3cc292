package identity

import (
	"context"
	"errors"
	"time"
)

// OrganizationStatus is the lifecycle state of an organization membership
type OrganizationStatus string

const (
	OrganizationActive    OrganizationStatus = "active"
	OrganizationPending   OrganizationStatus = "pending"
	OrganizationSuspended OrganizationStatus = "suspended"
)

// ErrInvalidSession marks tokens that failed validation: bad signature,
// expired, revoked, or malformed. Wrapped errors carry the detail.
var ErrInvalidSession = errors.New("invalid session")

// Session is the validated identity of a caller. OrganizationID is empty
// for authenticated users with no active organization membership.
type Session struct {
	UserID string

	OrganizationID     string
	OrganizationName   string
	OrganizationRole   string
	OrganizationSlug   string
	OrganizationStatus OrganizationStatus

	ExpiresAt time.Time
}

// HasOrganization reports whether the session carries an active organization
func (s *Session) HasOrganization() bool {
	return s.OrganizationID != ""
}

// Provider validates session tokens. Validate must honor ctx cancellation
// and return an error wrapping ErrInvalidSession for rejected tokens, or a
// plain error for infrastructure failures.
type Provider interface {
	Validate(ctx context.Context, token string) (*Session, error)
}
