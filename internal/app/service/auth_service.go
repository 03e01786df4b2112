package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultOrganizationName = "Default Organization"
	minPasswordLength       = 6
)

type AuthService struct {
	users  ports.UserRepository
	orgs   ports.OrganizationRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	orgs ports.OrganizationRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
) *AuthService {
	return &AuthService{
		users:  users,
		orgs:   orgs,
		hasher: hasher,
		tokens: tokens,
		logger: zap.L().Named("auth"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an Owner in a new organization when a name is given, and a
// Viewer of the first root organization otherwise.
func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.AuthResult{}, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return domain.AuthResult{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.AuthResult{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.AuthResult{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleViewer
	var (
		org     domain.Organization
		created bool
	)
	if orgName := strings.TrimSpace(input.OrganizationName); orgName != "" {
		role = domain.RoleOwner
		org, err = s.createOrganization(ctx, orgName)
		created = err == nil
	} else {
		org, created, err = s.defaultOrganization(ctx)
	}
	if err != nil {
		return domain.AuthResult{}, err
	}

	now := s.now()
	user := domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		PasswordHash:   hash,
		Role:           role,
		OrganizationID: org.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if created {
			s.discardOrganization(ctx, org.ID)
		}
		return domain.AuthResult{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("organization_id", org.ID),
		zap.String("role", string(role)),
	)
	return s.issue(user, org)
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.AuthResult{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.AuthResult{}, err
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return domain.AuthResult{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	org, err := s.orgs.FindByID(ctx, user.OrganizationID)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return s.issue(user, org)
}

func (s *AuthService) issue(user domain.User, org domain.Organization) (domain.AuthResult, error) {
	token, err := s.tokens.Issue(CallerFor(user, org))
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.AuthResult{AccessToken: token, User: user}, nil
}

func (s *AuthService) createOrganization(ctx context.Context, name string) (domain.Organization, error) {
	now := s.now()
	org := domain.Organization{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.orgs.Create(ctx, &org); err != nil {
		return domain.Organization{}, err
	}
	return org, nil
}

// defaultOrganization reports whether the organization was created by this call.
func (s *AuthService) defaultOrganization(ctx context.Context) (domain.Organization, bool, error) {
	org, err := s.orgs.FindFirstRoot(ctx)
	if err == nil {
		return org, false, nil
	}
	if !errors.Is(err, domain.ErrOrganizationNotFound) {
		return domain.Organization{}, false, err
	}
	org, err = s.createOrganization(ctx, defaultOrganizationName)
	return org, err == nil, err
}

// discardOrganization removes an organization created for a registration
// whose user insert lost a race on the email.
func (s *AuthService) discardOrganization(ctx context.Context, id string) {
	if err := s.orgs.Delete(ctx, id); err != nil {
		s.logger.Error("failed to discard organization of rejected registration",
			zap.String("organization_id", id),
			zap.Error(err),
		)
	}
}

// CallerFor builds the identity a token carries for user.
func CallerFor(user domain.User, org domain.Organization) domain.Caller {
	caller := domain.Caller{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		Permissions:    policy.PermissionsFor(user.Role),
	}
	if org.ParentID != nil {
		caller.ParentOrganizationID = *org.ParentID
	}
	return caller
}

var _ ports.AuthService = (*AuthService)(nil)
