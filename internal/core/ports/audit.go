package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	// List returns entries newest first.
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
}

// AuditSink receives one record per successful mutation.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

type AuditService interface {
	AuditSink
	ListAuditLog(ctx context.Context, caller domain.Caller, filter domain.AuditFilter) ([]domain.AuditEntry, error)
}
