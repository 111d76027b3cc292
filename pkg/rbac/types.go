package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Role represents an organization-level role. The set is closed: values
// outside the declared constants are rejected by ParseRole and by every
// resolution function.
type Role string

const (
	// RoleMember has read-only access to basic data.
	RoleMember Role = "member"
	// RoleStaff adds create/edit on patients, conversations and messages.
	RoleStaff Role = "staff"
	// RoleAdmin adds user management, organization settings and advanced analytics.
	RoleAdmin Role = "admin"
	// RoleOwner has full access including billing and destructive operations.
	RoleOwner Role = "owner"
)

// Roles returns all declared roles in ascending hierarchy order.
func Roles() []Role {
	return []Role{RoleMember, RoleStaff, RoleAdmin, RoleOwner}
}

// roleRanks orders roles for hierarchy comparisons. Higher rank is senior.
var roleRanks = map[Role]int{
	RoleMember: 1,
	RoleStaff:  2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// UnknownRoleError indicates a role value outside the declared enum.
// It is a configuration defect, not an authorization decision.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}

// IsUnknownRole checks if an error is an UnknownRoleError.
func IsUnknownRole(err error) bool {
	var target *UnknownRoleError
	return errors.As(err, &target)
}

// ParseRole converts a transit string to a Role, failing fast on values
// outside the enum rather than coercing them.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRanks[role]; !ok {
		return "", &UnknownRoleError{Role: s}
	}
	return role, nil
}

// Rank returns the role's position in the hierarchy (senior is greater).
func (r Role) Rank() (int, error) {
	rank, ok := roleRanks[r]
	if !ok {
		return 0, &UnknownRoleError{Role: string(r)}
	}
	return rank, nil
}

// Valid reports whether the role is one of the declared constants.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Permission identifies a single grantable capability, formatted as
// "resource:action". Permissions are checked independently of any grouping.
type Permission string

const (
	// Patient management
	PermissionPatientsView   Permission = "patients:view"
	PermissionPatientsCreate Permission = "patients:create"
	PermissionPatientsEdit   Permission = "patients:edit"
	PermissionPatientsDelete Permission = "patients:delete"
	PermissionPatientsExport Permission = "patients:export"

	// Conversation management
	PermissionConversationsView   Permission = "conversations:view"
	PermissionConversationsCreate Permission = "conversations:create"
	PermissionConversationsEdit   Permission = "conversations:edit"
	PermissionConversationsDelete Permission = "conversations:delete"
	PermissionConversationsExport Permission = "conversations:export"

	// Message management
	PermissionMessagesView   Permission = "messages:view"
	PermissionMessagesCreate Permission = "messages:create"
	PermissionMessagesEdit   Permission = "messages:edit"
	PermissionMessagesDelete Permission = "messages:delete"

	// Analytics and reporting
	PermissionAnalyticsView     Permission = "analytics:view"
	PermissionAnalyticsExport   Permission = "analytics:export"
	PermissionAnalyticsAdvanced Permission = "analytics:advanced"

	// User management
	PermissionUsersView        Permission = "users:view"
	PermissionUsersInvite      Permission = "users:invite"
	PermissionUsersEdit        Permission = "users:edit"
	PermissionUsersDelete      Permission = "users:delete"
	PermissionUsersManageRoles Permission = "users:manage_roles"

	// Organization management
	PermissionOrganizationView     Permission = "organization:view"
	PermissionOrganizationEdit     Permission = "organization:edit"
	PermissionOrganizationSettings Permission = "organization:settings"
	PermissionOrganizationBilling  Permission = "organization:billing"
	PermissionOrganizationDelete   Permission = "organization:delete"

	// Integration management
	PermissionIntegrationsView      Permission = "integrations:view"
	PermissionIntegrationsConfigure Permission = "integrations:configure"
	PermissionIntegrationsDelete    Permission = "integrations:delete"

	// System administration
	PermissionSystemLogs        Permission = "system:logs"
	PermissionSystemMaintenance Permission = "system:maintenance"
	PermissionSystemBackup      Permission = "system:backup"

	// Data management
	PermissionDataImport Permission = "data:import"
	PermissionDataExport Permission = "data:export"
	PermissionDataDelete Permission = "data:delete"
)

// String returns the wire representation of the permission.
func (p Permission) String() string {
	return string(p)
}

// PermissionGroup is a named category of permissions used for UI
// presentation only; grouping carries no authorization weight.
type PermissionGroup struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Permissions []Permission `json:"permissions"`
}
