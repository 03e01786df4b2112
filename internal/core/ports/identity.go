package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	FindByID(ctx context.Context, id string) (domain.Organization, error)
	FindByName(ctx context.Context, name string) (domain.Organization, error)
	// FindFirstRoot returns the oldest organization without a parent.
	FindFirstRoot(ctx context.Context) (domain.Organization, error)
	ListChildren(ctx context.Context, parentID string) ([]domain.Organization, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	// Create returns domain.ErrConflict when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	ListByOrganization(ctx context.Context, orgID string) ([]domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenService interface {
	Issue(caller domain.Caller) (string, error)
	Verify(token string) (domain.Caller, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error)
}

type OrganizationService interface {
	GetMyOrganization(ctx context.Context, caller domain.Caller) (domain.Organization, error)
	CreateSubOrganization(ctx context.Context, caller domain.Caller, name string) (domain.Organization, error)
}

type UserService interface {
	ListUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error)
	Profile(ctx context.Context, caller domain.Caller) (domain.User, error)
}
