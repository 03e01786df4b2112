package memory

import (
	"context"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// AuditRepository is append-only; entries are kept in insertion order.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Append(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditRepository) List(_ context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AuditEntry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		e := r.entries[i]
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Resource != "" && e.Resource != filter.Resource {
			continue
		}
		if filter.ResourceID != "" && e.ResourceID != filter.ResourceID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
