package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

// TaskStore is the persistence contract for tasks. Inside WithinTx every read
// locks what it returns until the transaction ends.
type TaskStore interface {
	FindByID(ctx context.Context, id string) (domain.Task, error)
	// FindByOrganizations orders by status column order, then by order.
	FindByOrganizations(ctx context.Context, orgIDs []string) ([]domain.Task, error)
	// MaxOrder reports false when the bucket is empty.
	MaxOrder(ctx context.Context, orgID string, status domain.TaskStatus) (int, bool, error)
	BucketPositions(ctx context.Context, orgID string, status domain.TaskStatus) ([]domain.TaskPosition, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	ShiftOrders(ctx context.Context, orgID string, status domain.TaskStatus, r domain.OrderRange, delta int) (int64, error)
	SetOrder(ctx context.Context, id string, order int) error
}

type TaskRepository interface {
	TaskStore
	// WithinTx runs fn atomically. Returning an error rolls everything back.
	WithinTx(ctx context.Context, fn func(store TaskStore) error) error
}

type TaskService interface {
	CreateTask(ctx context.Context, caller domain.Caller, input domain.CreateTaskInput) (domain.Task, error)
	ListTasks(ctx context.Context, caller domain.Caller) ([]domain.Task, error)
	GetTask(ctx context.Context, caller domain.Caller, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, caller domain.Caller, id string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, caller domain.Caller, id string) error
	ReorderTask(ctx context.Context, caller domain.Caller, id string, input domain.ReorderTaskInput) ([]domain.Task, error)
}
