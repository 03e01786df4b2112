package policy

import "taskboard/internal/core/domain"

var rolePermissions = map[domain.Role][]domain.Permission{
	domain.RoleOwner: {
		domain.PermissionCreateTask,
		domain.PermissionReadTask,
		domain.PermissionUpdateTask,
		domain.PermissionDeleteTask,
		domain.PermissionViewAudit,
		domain.PermissionManageUsers,
		domain.PermissionManageOrganization,
	},
	domain.RoleAdmin: {
		domain.PermissionCreateTask,
		domain.PermissionReadTask,
		domain.PermissionUpdateTask,
		domain.PermissionDeleteTask,
		domain.PermissionViewAudit,
		domain.PermissionManageUsers,
	},
	domain.RoleViewer: {
		domain.PermissionReadTask,
	},
}

// PermissionsFor returns a copy of the permission set granted to role.
// Unknown roles hold nothing.
func PermissionsFor(role domain.Role) []domain.Permission {
	perms := rolePermissions[role]
	out := make([]domain.Permission, len(perms))
	copy(out, perms)
	return out
}
