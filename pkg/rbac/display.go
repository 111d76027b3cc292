package rbac

// roleDisplayNames maps roles to user-facing names.
var roleDisplayNames = map[Role]string{
	RoleMember: "Member",
	RoleStaff:  "Staff Member",
	RoleAdmin:  "Administrator",
	RoleOwner:  "Organization Owner",
}

// roleDescriptions maps roles to user-facing descriptions.
var roleDescriptions = map[Role]string{
	RoleMember: "Can view patients, conversations, and basic analytics. Read-only access.",
	RoleStaff:  "Can view and edit patients, conversations, and messages. Can export data.",
	RoleAdmin:  "Can manage users, organization settings, and access advanced features.",
	RoleOwner:  "Full access to all features including billing, user management, and organization settings.",
}

// RoleDisplayName returns the user-facing name for the role.
func RoleDisplayName(role Role) (string, error) {
	name, ok := roleDisplayNames[role]
	if !ok {
		return "", &UnknownRoleError{Role: string(role)}
	}
	return name, nil
}

// RoleDescription returns the user-facing description for the role.
func RoleDescription(role Role) (string, error) {
	desc, ok := roleDescriptions[role]
	if !ok {
		return "", &UnknownRoleError{Role: string(role)}
	}
	return desc, nil
}

// permissionDescriptions maps permissions to user-facing descriptions.
var permissionDescriptions = map[Permission]string{
	PermissionPatientsView:   "View patient information",
	PermissionPatientsCreate: "Create new patients",
	PermissionPatientsEdit:   "Edit patient information",
	PermissionPatientsDelete: "Delete patients",
	PermissionPatientsExport: "Export patient data",

	PermissionConversationsView:   "View conversations",
	PermissionConversationsCreate: "Start new conversations",
	PermissionConversationsEdit:   "Edit conversations",
	PermissionConversationsDelete: "Delete conversations",
	PermissionConversationsExport: "Export conversation data",

	PermissionMessagesView:   "View messages",
	PermissionMessagesCreate: "Send messages",
	PermissionMessagesEdit:   "Edit messages",
	PermissionMessagesDelete: "Delete messages",

	PermissionAnalyticsView:     "View basic analytics",
	PermissionAnalyticsExport:   "Export analytics data",
	PermissionAnalyticsAdvanced: "Access advanced analytics",

	PermissionUsersView:        "View organization users",
	PermissionUsersInvite:      "Invite new users",
	PermissionUsersEdit:        "Edit user information",
	PermissionUsersDelete:      "Remove users",
	PermissionUsersManageRoles: "Manage user roles",

	PermissionOrganizationView:     "View organization information",
	PermissionOrganizationEdit:     "Edit organization settings",
	PermissionOrganizationSettings: "Manage organization settings",
	PermissionOrganizationBilling:  "Manage billing and subscriptions",
	PermissionOrganizationDelete:   "Delete organization",

	PermissionIntegrationsView:      "View integrations",
	PermissionIntegrationsConfigure: "Configure integrations",
	PermissionIntegrationsDelete:    "Remove integrations",

	PermissionSystemLogs:        "Access system logs",
	PermissionSystemMaintenance: "Perform system maintenance",
	PermissionSystemBackup:      "Manage system backups",

	PermissionDataImport: "Import data",
	PermissionDataExport: "Export organization data",
	PermissionDataDelete: "Permanently delete data",
}

// PermissionDescription returns the user-facing description for the
// permission, falling back to the permission string itself.
func PermissionDescription(perm Permission) string {
	if desc, ok := permissionDescriptions[perm]; ok {
		return desc
	}
	return perm.String()
}

// PermissionGroups returns the UI presentation categories. Grouping carries
// no authorization weight; checks always go through HasPermission.
func PermissionGroups() []PermissionGroup {
	return []PermissionGroup{
		{
			Name:  "patient_management",
			Label: "Patient Management",
			Permissions: []Permission{
				PermissionPatientsView,
				PermissionPatientsCreate,
				PermissionPatientsEdit,
				PermissionPatientsDelete,
				PermissionPatientsExport,
			},
		},
		{
			Name:  "communication",
			Label: "Communication",
			Permissions: []Permission{
				PermissionConversationsView,
				PermissionConversationsCreate,
				PermissionConversationsEdit,
				PermissionConversationsDelete,
				PermissionConversationsExport,
				PermissionMessagesView,
				PermissionMessagesCreate,
				PermissionMessagesEdit,
				PermissionMessagesDelete,
			},
		},
		{
			Name:  "analytics",
			Label: "Analytics & Reporting",
			Permissions: []Permission{
				PermissionAnalyticsView,
				PermissionAnalyticsExport,
				PermissionAnalyticsAdvanced,
			},
		},
		{
			Name:  "user_management",
			Label: "User Management",
			Permissions: []Permission{
				PermissionUsersView,
				PermissionUsersInvite,
				PermissionUsersEdit,
				PermissionUsersDelete,
				PermissionUsersManageRoles,
			},
		},
		{
			Name:  "organization",
			Label: "Organization",
			Permissions: []Permission{
				PermissionOrganizationView,
				PermissionOrganizationEdit,
				PermissionOrganizationSettings,
				PermissionOrganizationBilling,
				PermissionOrganizationDelete,
			},
		},
		{
			Name:  "integrations",
			Label: "Integrations",
			Permissions: []Permission{
				PermissionIntegrationsView,
				PermissionIntegrationsConfigure,
				PermissionIntegrationsDelete,
			},
		},
		{
			Name:  "data_management",
			Label: "Data Management",
			Permissions: []Permission{
				PermissionDataImport,
				PermissionDataExport,
				PermissionDataDelete,
			},
		},
		{
			Name:  "system",
			Label: "System Administration",
			Permissions: []Permission{
				PermissionSystemLogs,
				PermissionSystemMaintenance,
				PermissionSystemBackup,
			},
		},
	}
}
