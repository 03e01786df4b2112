package domain

import (
	"context"
	"strings"
	"time"
)

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

const (
	AuditResourceTask         = "task"
	AuditResourceOrganization = "organization"
)

const (
	DefaultAuditLimit       = 100
	DefaultAuditLimitByUser = 50
)

type AuditEntry struct {
	ID         string
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	Details    string
	Origin     *string
	Timestamp  time.Time
}

// AuditFilter narrows audit lookups. Zero-valued fields are ignored.
type AuditFilter struct {
	UserID     string
	Resource   string
	ResourceID string
	Limit      int
}

type originContextKey struct{}

// ContextWithOrigin stores the network origin of the request for audit records.
func ContextWithOrigin(ctx context.Context, origin string) context.Context {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originContextKey{}, origin)
}

func OriginFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(originContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
