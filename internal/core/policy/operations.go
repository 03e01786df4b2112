package policy

import (
	"fmt"

	"taskboard/internal/core/domain"
)

// Operation names an externally reachable action.
type Operation string

const (
	OpCreateTask            Operation = "task.create"
	OpListTasks             Operation = "task.list"
	OpGetTask               Operation = "task.get"
	OpUpdateTask            Operation = "task.update"
	OpDeleteTask            Operation = "task.delete"
	OpReorderTask           Operation = "task.reorder"
	OpListAuditLog          Operation = "audit.list"
	OpGetOrganization       Operation = "organization.get"
	OpCreateSubOrganization Operation = "organization.create_sub"
	OpListUsers             Operation = "user.list"
	OpGetProfile            Operation = "user.profile"
)

// Requirement is what a caller must hold to run an operation. Empty Roles
// admits any role.
type Requirement struct {
	Roles       []domain.Role
	Permissions []domain.Permission
}

var ownerOrAdmin = []domain.Role{domain.RoleOwner, domain.RoleAdmin}

var operationTable = map[Operation]Requirement{
	OpCreateTask:            {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionCreateTask}},
	OpListTasks:             {Permissions: []domain.Permission{domain.PermissionReadTask}},
	OpGetTask:               {Permissions: []domain.Permission{domain.PermissionReadTask}},
	OpUpdateTask:            {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionUpdateTask}},
	OpDeleteTask:            {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionDeleteTask}},
	OpReorderTask:           {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionUpdateTask}},
	OpListAuditLog:          {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionViewAudit}},
	OpGetOrganization:       {},
	OpCreateSubOrganization: {Roles: []domain.Role{domain.RoleOwner}, Permissions: []domain.Permission{domain.PermissionManageOrganization}},
	OpListUsers:             {Roles: ownerOrAdmin, Permissions: []domain.Permission{domain.PermissionManageUsers}},
	OpGetProfile:            {},
}

func RequirementFor(op Operation) (Requirement, bool) {
	req, ok := operationTable[op]
	return req, ok
}

// Authorize checks the caller against the table entry for op. Unknown
// operations are always rejected.
func Authorize(op Operation, caller domain.Caller) error {
	req, ok := operationTable[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", domain.ErrForbidden, op)
	}
	if len(req.Roles) > 0 && !HasRole(caller.Role, req.Roles) {
		return fmt.Errorf("%w: role %q may not %s", domain.ErrForbidden, caller.Role, op)
	}
	if !HasPermission(caller.Permissions, req.Permissions) {
		return fmt.Errorf("%w: missing permissions for %s", domain.ErrForbidden, op)
	}
	return nil
}
