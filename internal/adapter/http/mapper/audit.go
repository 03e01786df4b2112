package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToAuditEntryItems(entries []domain.AuditEntry) []dto.AuditEntryItem {
	items := make([]dto.AuditEntryItem, 0, len(entries))
	for _, entry := range entries {
		item := dto.AuditEntryItem{
			ID:         entry.ID,
			UserID:     entry.UserID,
			Action:     entry.Action,
			Resource:   entry.Resource,
			ResourceID: entry.ResourceID,
			Details:    entry.Details,
			Timestamp:  entry.Timestamp.Format(time.RFC3339),
		}
		if entry.Origin != nil {
			value := *entry.Origin
			item.Origin = &value
		}
		items = append(items, item)
	}
	return items
}
