package service

import (
	"context"
	"fmt"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	if !policy.HasPermission(caller.Permissions, []domain.Permission{domain.PermissionManageUsers}) {
		return nil, fmt.Errorf("%w: listing users requires %s", domain.ErrForbidden, domain.PermissionManageUsers)
	}
	return s.users.ListByOrganization(ctx, caller.OrganizationID)
}

func (s *UserService) Profile(ctx context.Context, caller domain.Caller) (domain.User, error) {
	return s.users.FindByID(ctx, caller.UserID)
}

var _ ports.UserService = (*UserService)(nil)
