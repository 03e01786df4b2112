package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/jmoiron/sqlx"
)

const (
	insertAuditEntryQuery = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, details, origin, created_at)
VALUES (:id, :user_id, :action, :resource, :resource_id, :details, :origin, :created_at)`

	listAuditEntriesQuery = `SELECT id, user_id, action, resource, resource_id, details, origin, created_at
FROM audit_logs`
)

type auditRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	Action     string         `db:"action"`
	Resource   string         `db:"resource"`
	ResourceID string         `db:"resource_id"`
	Details    string         `db:"details"`
	Origin     sql.NullString `db:"origin"`
	CreatedAt  time.Time      `db:"created_at"`
}

type AuditRepository struct {
	db *sqlx.DB
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	row := auditRow{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Details:    entry.Details,
		CreatedAt:  entry.Timestamp,
	}
	if entry.Origin != nil {
		row.Origin = sql.NullString{String: *entry.Origin, Valid: true}
	}
	_, err := r.db.NamedExecContext(ctx, insertAuditEntryQuery, row)
	return err
}

func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	query, args := buildAuditListQuery(filter)

	var rows []auditRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	entries := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.AuditEntry{
			ID:         row.ID,
			UserID:     row.UserID,
			Action:     row.Action,
			Resource:   row.Resource,
			ResourceID: row.ResourceID,
			Details:    row.Details,
			Timestamp:  row.CreatedAt,
		}
		if row.Origin.Valid {
			value := row.Origin.String
			entry.Origin = &value
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func buildAuditListQuery(filter domain.AuditFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Resource != "" {
		conditions = append(conditions, "resource = ?")
		args = append(args, filter.Resource)
	}
	if filter.ResourceID != "" {
		conditions = append(conditions, "resource_id = ?")
		args = append(args, filter.ResourceID)
	}

	var b strings.Builder
	b.WriteString(listAuditEntriesQuery)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	return b.String(), args
}
