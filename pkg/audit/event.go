package audit

import (
	"time"

	"github.com/google/uuid"
)

// Outcome represents the result of an audited decision
type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeDenied  Outcome = "denied"
	OutcomeError   Outcome = "error"
)

// Event is a single audit log entry describing one authorization decision.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Action names the protected operation, e.g. "patients.view"
	Action  string  `json:"action"`
	Outcome Outcome `json:"outcome"`

	// Actor
	UserID         string `json:"user_id,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	Role           string `json:"role,omitempty"`

	// Request context
	SourceAddress string `json:"source_address,omitempty"`
	Method        string `json:"method,omitempty"`
	Path          string `json:"path,omitempty"`
	RequestID     string `json:"request_id,omitempty"`

	// Detail carries the denial reason or error text, never secrets
	Detail string `json:"detail,omitempty"`
}

// normalize fills in the fields the caller may omit
func (e *Event) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}
