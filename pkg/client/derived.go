package client

import (
	"github.com/routiq/orggate/pkg/rbac"
)

// Derived booleans for UI gating. All of them go through the resolution
// engine with the mirrored role and fail closed: no snapshot, or a role
// the engine does not declare, answers false.

// HasPermission reports whether the mirrored role grants the permission
func (m *Mirror) HasPermission(perm rbac.Permission) bool {
	snapshot := m.Current()
	if snapshot == nil {
		return false
	}
	allowed, err := rbac.HasPermission(snapshot.Role, perm)
	return err == nil && allowed
}

// IsAdmin reports whether the mirrored role carries admin authority
func (m *Mirror) IsAdmin() bool {
	snapshot := m.Current()
	if snapshot == nil {
		return false
	}
	ok, err := rbac.CanAssumeRole(snapshot.Role, rbac.RoleAdmin)
	return err == nil && ok
}

// IsOwner reports whether the mirrored role is the organization owner
func (m *Mirror) IsOwner() bool {
	snapshot := m.Current()
	if snapshot == nil {
		return false
	}
	ok, err := rbac.CanAssumeRole(snapshot.Role, rbac.RoleOwner)
	return err == nil && ok
}

// CanManageUsers reports whether the mirrored role may manage members
func (m *Mirror) CanManageUsers() bool {
	return m.HasPermission(rbac.PermissionUsersManageRoles)
}
