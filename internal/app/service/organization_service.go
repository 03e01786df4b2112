package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrganizationService struct {
	orgs   ports.OrganizationRepository
	audit  ports.AuditSink
	logger *zap.Logger
	now    func() time.Time
}

func NewOrganizationService(orgs ports.OrganizationRepository, audit ports.AuditSink) *OrganizationService {
	return &OrganizationService{
		orgs:   orgs,
		audit:  audit,
		logger: zap.L().Named("organization_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetMyOrganization returns the caller's organization with its direct children.
func (s *OrganizationService) GetMyOrganization(ctx context.Context, caller domain.Caller) (domain.Organization, error) {
	org, err := s.orgs.FindByID(ctx, caller.OrganizationID)
	if err != nil {
		return domain.Organization{}, err
	}
	children, err := s.orgs.ListChildren(ctx, org.ID)
	if err != nil {
		return domain.Organization{}, err
	}
	org.Children = children
	return org, nil
}

// CreateSubOrganization nests a new organization under the caller's. Only one
// level of nesting exists, so callers already in a sub-organization are refused.
func (s *OrganizationService) CreateSubOrganization(
	ctx context.Context,
	caller domain.Caller,
	name string,
) (domain.Organization, error) {
	if !policy.HasPermission(caller.Permissions, []domain.Permission{domain.PermissionManageOrganization}) {
		return domain.Organization{}, fmt.Errorf("%w: creating organizations requires %s", domain.ErrForbidden, domain.PermissionManageOrganization)
	}
	if caller.HasParentOrganization() {
		return domain.Organization{}, fmt.Errorf("%w: sub-organizations cannot be nested", domain.ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Organization{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	parent, err := s.orgs.FindByID(ctx, caller.OrganizationID)
	if err != nil {
		return domain.Organization{}, err
	}

	now := s.now()
	org := domain.Organization{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  &parent.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orgs.Create(ctx, &org); err != nil {
		return domain.Organization{}, err
	}

	entry := domain.AuditEntry{
		UserID:     caller.UserID,
		Action:     domain.AuditActionCreate,
		Resource:   domain.AuditResourceOrganization,
		ResourceID: org.ID,
		Details:    "Created sub-organization: " + org.Name,
	}
	if origin, ok := domain.OriginFromContext(ctx); ok {
		entry.Origin = &origin
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record audit entry", zap.String("organization_id", org.ID), zap.Error(err))
	}
	return org, nil
}

var _ ports.OrganizationService = (*OrganizationService)(nil)
