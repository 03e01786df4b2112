package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/reorder"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	engine         *reorder.Engine
	audit          ports.AuditSink
	logger         *zap.Logger
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository, engine *reorder.Engine, audit ports.AuditSink) *TaskService {
	return &TaskService{
		taskRepository: taskRepository,
		engine:         engine,
		audit:          audit,
		logger:         zap.L().Named("task_service"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *TaskService) CreateTask(ctx context.Context, caller domain.Caller, input domain.CreateTaskInput) (domain.Task, error) {
	if err := policy.CheckTaskCreate(caller); err != nil {
		return domain.Task{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	status := valueOr(input.Status, domain.TaskStatusTodo)
	priority := valueOr(input.Priority, domain.TaskPriorityMedium)
	category := valueOr(input.Category, domain.TaskCategoryOther)
	if err := validateEnums(status, priority, category); err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	task := domain.Task{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		Category:       category,
		OwnerID:        caller.UserID,
		OrganizationID: caller.OrganizationID,
		DueDate:        input.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.taskRepository.WithinTx(ctx, func(store ports.TaskStore) error {
		maxOrder, found, err := store.MaxOrder(ctx, task.OrganizationID, task.Status)
		if err != nil {
			return err
		}
		if found {
			task.Order = maxOrder + 1
		}
		return store.Save(ctx, &task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.record(ctx, caller, domain.AuditActionCreate, task, "Created task: "+task.Title)
	return task, nil
}

// ListTasks returns the same scoped list for every role.
func (s *TaskService) ListTasks(ctx context.Context, caller domain.Caller) ([]domain.Task, error) {
	return s.taskRepository.FindByOrganizations(ctx, policy.Scope(caller))
}

func (s *TaskService) GetTask(ctx context.Context, caller domain.Caller, id string) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := policy.CheckTaskScope(caller, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask applies the provided fields. A status change moves the task to
// the end of its new column.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	caller domain.Caller,
	id string,
	input domain.UpdateTaskInput,
) (domain.Task, error) {
	var task domain.Task
	err := s.taskRepository.WithinTx(ctx, func(store ports.TaskStore) error {
		var err error
		task, err = store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.CheckTaskScope(caller, task); err != nil {
			return err
		}
		if err := policy.CheckTaskUpdate(caller, task); err != nil {
			return err
		}

		if err := applyUpdate(&task, input); err != nil {
			return err
		}
		task.UpdatedAt = s.now()

		if input.Status != nil && *input.Status != task.Status {
			_, err := s.engine.MoveTask(ctx, store, &task, caller.OrganizationID, domain.ReorderTaskInput{
				Status: *input.Status,
				Order:  domain.NoUpperBound,
			})
			return err
		}
		return store.Save(ctx, &task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.record(ctx, caller, domain.AuditActionUpdate, task, "Updated task: "+task.Title)
	return task, nil
}

// DeleteTask leaves a gap in the bucket; the next move touching it closes the gap.
func (s *TaskService) DeleteTask(ctx context.Context, caller domain.Caller, id string) error {
	var task domain.Task
	err := s.taskRepository.WithinTx(ctx, func(store ports.TaskStore) error {
		var err error
		task, err = store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.CheckTaskScope(caller, task); err != nil {
			return err
		}
		if err := policy.CheckTaskDelete(caller, task); err != nil {
			return err
		}
		return store.Delete(ctx, task.ID)
	})
	if err != nil {
		return err
	}

	s.record(ctx, caller, domain.AuditActionDelete, task, "Deleted task: "+task.Title)
	return nil
}

// ReorderTask moves a task inside the caller's organization and returns the
// full scoped board afterwards.
func (s *TaskService) ReorderTask(
	ctx context.Context,
	caller domain.Caller,
	id string,
	input domain.ReorderTaskInput,
) ([]domain.Task, error) {
	err := s.taskRepository.WithinTx(ctx, func(store ports.TaskStore) error {
		task, err := store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.CheckTaskScope(caller, task); err != nil {
			return err
		}
		if err := policy.CheckTaskReorder(caller); err != nil {
			return err
		}

		task.UpdatedAt = s.now()
		move, err := s.engine.MoveTask(ctx, store, &task, caller.OrganizationID, input)
		if err != nil {
			return err
		}
		s.logger.Debug("task reordered",
			zap.String("task_id", move.TaskID),
			zap.String("from_status", string(move.FromStatus)),
			zap.Int("from_order", move.FromOrder),
			zap.String("to_status", string(move.ToStatus)),
			zap.Int("to_order", move.ToOrder),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ListTasks(ctx, caller)
}

func (s *TaskService) record(ctx context.Context, caller domain.Caller, action string, task domain.Task, details string) {
	entry := domain.AuditEntry{
		UserID:     caller.UserID,
		Action:     action,
		Resource:   domain.AuditResourceTask,
		ResourceID: task.ID,
		Details:    details,
	}
	if origin, ok := domain.OriginFromContext(ctx); ok {
		entry.Origin = &origin
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record audit entry",
			zap.String("action", action),
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
	}
}

func applyUpdate(task *domain.Task, input domain.UpdateTaskInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		task.Title = title
	}
	if input.DescriptionSet {
		task.Description = input.Description
	}
	if input.DueDateSet {
		task.DueDate = input.DueDate
	}

	priority := valueOr(input.Priority, task.Priority)
	category := valueOr(input.Category, task.Category)
	status := valueOr(input.Status, task.Status)
	if err := validateEnums(status, priority, category); err != nil {
		return err
	}
	task.Priority = priority
	task.Category = category
	return nil
}

func validateEnums(status domain.TaskStatus, priority domain.TaskPriority, category domain.TaskCategory) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, priority)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}
	return nil
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}

var _ ports.TaskService = (*TaskService)(nil)
