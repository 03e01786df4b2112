package policy

import (
	"fmt"
	"slices"

	"taskboard/internal/core/domain"
)

// HasPermission reports whether held covers every permission in required.
func HasPermission(held, required []domain.Permission) bool {
	for _, p := range required {
		if !slices.Contains(held, p) {
			return false
		}
	}
	return true
}

func HasRole(role domain.Role, allowed []domain.Role) bool {
	return slices.Contains(allowed, role)
}

// CanAccessOrganization allows a caller into its own organization and, when it
// has one, into its parent. Visibility never reaches down into sub-organizations.
func CanAccessOrganization(callerOrgID, callerParentOrgID, targetOrgID string) bool {
	if callerOrgID == targetOrgID {
		return true
	}
	return callerParentOrgID != "" && callerParentOrgID == targetOrgID
}

func IsResourceOwner(callerID, resourceOwnerID string) bool {
	return callerID == resourceOwnerID
}

// Scope lists the organizations the caller may read and act within.
func Scope(caller domain.Caller) []string {
	orgIDs := []string{caller.OrganizationID}
	if caller.HasParentOrganization() {
		orgIDs = append(orgIDs, caller.ParentOrganizationID)
	}
	return orgIDs
}

func CheckTaskScope(caller domain.Caller, task domain.Task) error {
	if !CanAccessOrganization(caller.OrganizationID, caller.ParentOrganizationID, task.OrganizationID) {
		return fmt.Errorf("%w: task %s", domain.ErrAccessDenied, task.ID)
	}
	return nil
}

func CheckTaskCreate(caller domain.Caller) error {
	if caller.Role == domain.RoleViewer {
		return fmt.Errorf("%w: viewers cannot create tasks", domain.ErrForbidden)
	}
	if !HasPermission(PermissionsFor(caller.Role), []domain.Permission{domain.PermissionCreateTask}) {
		return fmt.Errorf("%w: role %q cannot create tasks", domain.ErrForbidden, caller.Role)
	}
	return nil
}

// CheckTaskUpdate expects the scope check to have passed already. A non-owning
// Admin may only update tasks of its own organization.
func CheckTaskUpdate(caller domain.Caller, task domain.Task) error {
	switch caller.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleAdmin:
		if IsResourceOwner(caller.UserID, task.OwnerID) || task.OrganizationID == caller.OrganizationID {
			return nil
		}
		return fmt.Errorf("%w: cannot update tasks outside your organization", domain.ErrForbidden)
	default:
		return fmt.Errorf("%w: role %q cannot update tasks", domain.ErrForbidden, caller.Role)
	}
}

// CheckTaskDelete expects the scope check to have passed already. Admins may
// only delete tasks they own.
func CheckTaskDelete(caller domain.Caller, task domain.Task) error {
	switch caller.Role {
	case domain.RoleOwner:
		return nil
	case domain.RoleAdmin:
		if IsResourceOwner(caller.UserID, task.OwnerID) {
			return nil
		}
		return fmt.Errorf("%w: admins can only delete their own tasks", domain.ErrForbidden)
	default:
		return fmt.Errorf("%w: role %q cannot delete tasks", domain.ErrForbidden, caller.Role)
	}
}

func CheckTaskReorder(caller domain.Caller) error {
	if !HasRole(caller.Role, ownerOrAdmin) {
		return fmt.Errorf("%w: role %q cannot reorder tasks", domain.ErrForbidden, caller.Role)
	}
	return nil
}
