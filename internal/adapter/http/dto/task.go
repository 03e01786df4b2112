package dto

type TaskItem struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	Category       string  `json:"category"`
	Order          int     `json:"order"`
	OwnerID        string  `json:"owner_id"`
	OrganizationID string  `json:"organization_id"`
	DueDate        *string `json:"due_date,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string `json:"category" binding:"omitempty,oneof=work personal shopping health other"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    *string `json:"category" binding:"omitempty,oneof=work personal shopping health other"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// ReorderTaskRequest carries an already decided drop position.
type ReorderTaskRequest struct {
	Order  *int   `json:"order" binding:"required"`
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}
