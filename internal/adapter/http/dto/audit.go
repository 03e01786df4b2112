package dto

type AuditEntryItem struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Action     string  `json:"action"`
	Resource   string  `json:"resource"`
	ResourceID string  `json:"resource_id"`
	Details    string  `json:"details,omitempty"`
	Origin     *string `json:"origin,omitempty"`
	Timestamp  string  `json:"timestamp"`
}

type AuditLogQuery struct {
	Limit      *int   `form:"limit" binding:"omitempty,gte=1,lte=1000"`
	UserID     string `form:"user_id"`
	Resource   string `form:"resource" binding:"omitempty,oneof=task organization"`
	ResourceID string `form:"resource_id"`
}
