package authcontext

import (
	"context"

	"github.com/routiq/orggate/pkg/rbac"
)

// OrgStatus is the lifecycle state of the caller's organization
type OrgStatus string

const (
	OrgActive    OrgStatus = "active"
	OrgPending   OrgStatus = "pending"
	OrgSuspended OrgStatus = "suspended"
)

// AuthorizationContext is the complete resolved identity for one request.
// It is produced by the gateway, read-only downstream, and never survives
// the request.
type AuthorizationContext struct {
	UserID string

	OrganizationID     string
	OrganizationName   string
	OrganizationSlug   string
	Role               rbac.Role
	OrganizationStatus OrgStatus
}

// HasOrganization reports whether the caller has an organization membership
func (a *AuthorizationContext) HasOrganization() bool {
	return a.OrganizationID != ""
}

type contextKey struct{}

// WithContext stores the authorization context on the request context
func WithContext(ctx context.Context, authCtx *AuthorizationContext) context.Context {
	return context.WithValue(ctx, contextKey{}, authCtx)
}

// FromContext retrieves the authorization context set by a guard. The
// boolean is false for handlers reached without passing a guard.
func FromContext(ctx context.Context) (*AuthorizationContext, bool) {
	authCtx, ok := ctx.Value(contextKey{}).(*AuthorizationContext)
	return authCtx, ok
}
