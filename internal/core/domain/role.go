package domain

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleViewer:
		return true
	}
	return false
}

type Permission string

const (
	PermissionCreateTask         Permission = "task:create"
	PermissionReadTask           Permission = "task:read"
	PermissionUpdateTask         Permission = "task:update"
	PermissionDeleteTask         Permission = "task:delete"
	PermissionViewAudit          Permission = "audit:view"
	PermissionManageUsers        Permission = "users:manage"
	PermissionManageOrganization Permission = "org:manage"
)
