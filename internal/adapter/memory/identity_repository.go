package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type OrganizationRepository struct {
	mu   sync.RWMutex
	orgs []domain.Organization
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)

func NewOrganizationRepository() *OrganizationRepository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) Create(_ context.Context, org *domain.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.orgs, func(o domain.Organization) bool { return o.ID == org.ID }) {
		return domain.ErrConflict
	}
	stored := *org
	stored.Children = nil
	r.orgs = append(r.orgs, stored)
	return nil
}

func (r *OrganizationRepository) FindByID(_ context.Context, id string) (domain.Organization, error) {
	return r.find(func(o domain.Organization) bool { return o.ID == id })
}

func (r *OrganizationRepository) FindByName(_ context.Context, name string) (domain.Organization, error) {
	return r.find(func(o domain.Organization) bool { return o.Name == name })
}

// FindFirstRoot relies on insertion order matching creation order.
func (r *OrganizationRepository) FindFirstRoot(_ context.Context) (domain.Organization, error) {
	return r.find(func(o domain.Organization) bool { return o.ParentID == nil })
}

func (r *OrganizationRepository) ListChildren(_ context.Context, parentID string) ([]domain.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	children := make([]domain.Organization, 0)
	for _, o := range r.orgs {
		if o.ParentID != nil && *o.ParentID == parentID {
			children = append(children, o)
		}
	}
	return children, nil
}

func (r *OrganizationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.IndexFunc(r.orgs, func(o domain.Organization) bool { return o.ID == id })
	if idx < 0 {
		return domain.ErrOrganizationNotFound
	}
	r.orgs = slices.Delete(r.orgs, idx, idx+1)
	return nil
}

func (r *OrganizationRepository) find(match func(domain.Organization) bool) (domain.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := slices.IndexFunc(r.orgs, match)
	if idx < 0 {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	return r.orgs[idx], nil
}

type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := slices.ContainsFunc(r.users, func(u domain.User) bool {
		return u.ID == user.ID || strings.EqualFold(u.Email, user.Email)
	})
	if taken {
		return domain.ErrConflict
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) ListByOrganization(_ context.Context, orgID string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0)
	for _, u := range r.users {
		if u.OrganizationID == orgID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *UserRepository) find(match func(domain.User) bool) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := slices.IndexFunc(r.users, match)
	if idx < 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.users[idx], nil
}
