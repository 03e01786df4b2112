package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService writes every entry both to the audit repository and to the
// structured log.
type AuditService struct {
	auditRepository ports.AuditRepository
	logger          *zap.Logger
	now             func() time.Time
}

func NewAuditService(auditRepository ports.AuditRepository) *AuditService {
	return &AuditService{
		auditRepository: auditRepository,
		logger:          zap.L().Named("audit"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}

	fields := []zap.Field{
		zap.String("user_id", entry.UserID),
		zap.String("action", entry.Action),
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID),
		zap.String("details", entry.Details),
	}
	if entry.Origin != nil {
		fields = append(fields, zap.String("origin", *entry.Origin))
	}
	s.logger.Info("audit", fields...)

	if err := s.auditRepository.Append(ctx, &entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *AuditService) ListAuditLog(ctx context.Context, caller domain.Caller, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	if !policy.HasPermission(caller.Permissions, []domain.Permission{domain.PermissionViewAudit}) {
		return nil, fmt.Errorf("%w: audit log requires %s", domain.ErrForbidden, domain.PermissionViewAudit)
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultAuditLimit
		if filter.UserID != "" {
			filter.Limit = domain.DefaultAuditLimitByUser
		}
	}
	return s.auditRepository.List(ctx, filter)
}

var _ ports.AuditService = (*AuditService)(nil)
