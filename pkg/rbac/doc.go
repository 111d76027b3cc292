// Package rbac implements the role-based permission resolution engine.
//
// # Overview
//
// This package is the single authority for role to permission resolution.
// Both the server-side access guards (pkg/authcontext) and the client-side
// context mirror (pkg/client) call into this package, so there is exactly
// one copy of the grant table in the system and the server and UI cannot
// drift apart.
//
// The engine is pure: no I/O, no side effects, and the grant table is
// immutable package data built once at init. Every function is safe for
// concurrent use.
//
// # Roles
//
// Roles form a total order:
//
//	RoleMember < RoleStaff < RoleAdmin < RoleOwner
//
// The grant table is monotonic in that order: every permission granted to a
// junior role is also granted to every senior role. This invariant is
// enforced by construction (senior grant sets are built by extending the
// junior sets) and verified by tests.
//
// # Unknown roles
//
// Calling any resolution function with a role outside the declared enum
// fails with *UnknownRoleError. The engine never silently maps an unknown
// role to an empty permission set: a default-deny there would hide
// configuration bugs behind ordinary 403s.
//
//	allowed, err := rbac.HasPermission(role, rbac.PermissionPatientsView)
//	if err != nil {
//		// configuration defect, surface as 500, never as 403
//	}
//
// # Related Packages
//
//   - pkg/authcontext: server-side guards built on this engine
//   - pkg/client: client mirror deriving UI booleans from this engine
//   - pkg/billing: alert composer gated on PermissionOrganizationBilling
package rbac
