package rbac

import "sort"

// memberGrants is the base grant set; every senior set extends the one
// below it, which makes the hierarchy monotonic by construction.
var memberGrants = []Permission{
	PermissionPatientsView,
	PermissionConversationsView,
	PermissionMessagesView,
	PermissionAnalyticsView,
}

var staffGrants = append(append([]Permission{}, memberGrants...),
	PermissionPatientsCreate,
	PermissionPatientsEdit,
	PermissionConversationsCreate,
	PermissionConversationsEdit,
	PermissionMessagesCreate,
	PermissionMessagesEdit,
	PermissionAnalyticsExport,
)

var adminGrants = append(append([]Permission{}, staffGrants...),
	PermissionPatientsDelete,
	PermissionPatientsExport,
	PermissionConversationsDelete,
	PermissionConversationsExport,
	PermissionMessagesDelete,
	PermissionAnalyticsAdvanced,
	PermissionUsersView,
	PermissionUsersInvite,
	PermissionUsersEdit,
	PermissionUsersManageRoles,
	PermissionOrganizationView,
	PermissionOrganizationEdit,
	PermissionOrganizationSettings,
	PermissionIntegrationsView,
	PermissionIntegrationsConfigure,
	PermissionDataImport,
	PermissionDataExport,
)

var ownerGrants = append(append([]Permission{}, adminGrants...),
	PermissionUsersDelete,
	PermissionOrganizationBilling,
	PermissionOrganizationDelete,
	PermissionIntegrationsDelete,
	PermissionSystemLogs,
	PermissionSystemMaintenance,
	PermissionSystemBackup,
	PermissionDataDelete,
)

// roleGrants is the authoritative role to permission table. It is built
// once at init and never mutated afterwards.
var roleGrants = map[Role]map[Permission]struct{}{
	RoleMember: permissionSet(memberGrants),
	RoleStaff:  permissionSet(staffGrants),
	RoleAdmin:  permissionSet(adminGrants),
	RoleOwner:  permissionSet(ownerGrants),
}

func permissionSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether the role grants the permission. An
// undeclared role fails with *UnknownRoleError rather than defaulting to
// deny, so configuration defects surface as errors instead of 403s.
func HasPermission(role Role, perm Permission) (bool, error) {
	grants, ok := roleGrants[role]
	if !ok {
		return false, &UnknownRoleError{Role: string(role)}
	}
	_, granted := grants[perm]
	return granted, nil
}

// HasAllPermissions reports whether the role grants every listed permission.
func HasAllPermissions(role Role, perms []Permission) (bool, error) {
	for _, perm := range perms {
		granted, err := HasPermission(role, perm)
		if err != nil {
			return false, err
		}
		if !granted {
			return false, nil
		}
	}
	return true, nil
}

// HasAnyPermission reports whether the role grants at least one of the
// listed permissions.
func HasAnyPermission(role Role, perms []Permission) (bool, error) {
	for _, perm := range perms {
		granted, err := HasPermission(role, perm)
		if err != nil {
			return false, err
		}
		if granted {
			return true, nil
		}
	}
	return false, nil
}

// RolePermissions returns every permission granted to the role, sorted for
// stable output.
func RolePermissions(role Role) ([]Permission, error) {
	grants, ok := roleGrants[role]
	if !ok {
		return nil, &UnknownRoleError{Role: string(role)}
	}
	perms := make([]Permission, 0, len(grants))
	for p := range grants {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms, nil
}

// CanAssumeRole reports whether the current role is at or above the target
// role in the hierarchy.
func CanAssumeRole(current, target Role) (bool, error) {
	currentRank, err := current.Rank()
	if err != nil {
		return false, err
	}
	targetRank, err := target.Rank()
	if err != nil {
		return false, err
	}
	return currentRank >= targetRank, nil
}

// CanAssignRole reports whether the assigner may grant the target role to
// another user. Admins may assign member and staff; owners may assign any
// role; nobody else manages roles.
func CanAssignRole(assigner, target Role) (bool, error) {
	if !target.Valid() {
		return false, &UnknownRoleError{Role: string(target)}
	}
	manages, err := HasPermission(assigner, PermissionUsersManageRoles)
	if err != nil {
		return false, err
	}
	if !manages {
		return false, nil
	}
	switch assigner {
	case RoleAdmin:
		return target == RoleMember || target == RoleStaff, nil
	case RoleOwner:
		return true, nil
	}
	return false, nil
}

// PermissionDifference returns the permissions granted to the target role
// but not to the source role, sorted for stable output.
func PermissionDifference(from, to Role) ([]Permission, error) {
	fromGrants, ok := roleGrants[from]
	if !ok {
		return nil, &UnknownRoleError{Role: string(from)}
	}
	toPerms, err := RolePermissions(to)
	if err != nil {
		return nil, err
	}
	var gained []Permission
	for _, p := range toPerms {
		if _, has := fromGrants[p]; !has {
			gained = append(gained, p)
		}
	}
	return gained, nil
}
