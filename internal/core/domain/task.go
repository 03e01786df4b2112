package domain

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses lists statuses in board column order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	return s.Rank() >= 0
}

// Rank is the column index used to sort tasks by status.
func (s TaskStatus) Rank() int {
	for i, status := range TaskStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryShopping TaskCategory = "shopping"
	TaskCategoryHealth   TaskCategory = "health"
	TaskCategoryOther    TaskCategory = "other"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryShopping, TaskCategoryHealth, TaskCategoryOther:
		return true
	}
	return false
}

type Task struct {
	ID             string
	Title          string
	Description    *string
	Status         TaskStatus
	Priority       TaskPriority
	Category       TaskCategory
	Order          int
	OwnerID        string
	OrganizationID string
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TaskPosition is the slice of a task the ordering code cares about.
type TaskPosition struct {
	ID    string
	Order int
}

// OrderRange is an inclusive range of order values inside one bucket.
type OrderRange struct {
	From int
	To   int
}

// NoUpperBound marks an OrderRange that is open at the top.
const NoUpperBound = 1<<31 - 1

func (r OrderRange) Contains(order int) bool {
	return order >= r.From && order <= r.To
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	Category    *TaskCategory
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	Priority       *TaskPriority
	Category       *TaskCategory
	DueDate        *time.Time
	DueDateSet     bool
}

type ReorderTaskInput struct {
	Order  int
	Status TaskStatus
}
