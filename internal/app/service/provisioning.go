package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provision makes sure the bootstrap organization and its Owner exist. It is
// safe to run on every start and must finish before requests are served.
func Provision(
	ctx context.Context,
	orgs ports.OrganizationRepository,
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	conf config.BootstrapConfig,
) error {
	logger := zap.L().Named("provisioning")
	email := strings.ToLower(strings.TrimSpace(conf.OwnerEmail))
	if email == "" {
		logger.Info("bootstrap skipped, no owner email configured")
		return nil
	}
	now := time.Now().UTC()

	org, err := orgs.FindByName(ctx, conf.OrganizationName)
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound):
		org = domain.Organization{ID: uuid.NewString(), Name: conf.OrganizationName, CreatedAt: now, UpdatedAt: now}
		if err := orgs.Create(ctx, &org); err != nil {
			return fmt.Errorf("create bootstrap organization: %w", err)
		}
		logger.Info("bootstrap organization created", zap.String("organization_id", org.ID))
	case err != nil:
		return fmt.Errorf("find bootstrap organization: %w", err)
	}

	_, err = users.FindByEmail(ctx, email)
	if err == nil {
		logger.Debug("bootstrap owner already present", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("find bootstrap owner: %w", err)
	}

	hash, err := hasher.Hash(conf.OwnerPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	owner := domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           conf.OwnerName,
		PasswordHash:   hash,
		Role:           domain.RoleOwner,
		OrganizationID: org.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := users.Create(ctx, &owner); err != nil {
		return fmt.Errorf("create bootstrap owner: %w", err)
	}
	logger.Info("bootstrap owner created", zap.String("user_id", owner.ID), zap.String("email", email))
	return nil
}
