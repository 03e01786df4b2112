package tests

import (
	"context"

	"taskboard/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, caller domain.Caller, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, caller, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, caller domain.Caller) ([]domain.Task, error) {
	args := m.Called(ctx, caller)
	return tasksArg(args, 0), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, caller domain.Caller, id string) (domain.Task, error) {
	args := m.Called(ctx, caller, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, caller domain.Caller, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, caller, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, caller domain.Caller, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *taskServiceMock) ReorderTask(ctx context.Context, caller domain.Caller, id string, input domain.ReorderTaskInput) ([]domain.Task, error) {
	args := m.Called(ctx, caller, id, input)
	return tasksArg(args, 0), args.Error(1)
}

func tasksArg(args mock.Arguments, index int) []domain.Task {
	var tasks []domain.Task
	if value := args.Get(index); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

type auditServiceMock struct {
	mock.Mock
}

func (m *auditServiceMock) Record(ctx context.Context, entry domain.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *auditServiceMock) ListAuditLog(ctx context.Context, caller domain.Caller, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, caller, filter)
	var entries []domain.AuditEntry
	if value := args.Get(0); value != nil {
		entries = value.([]domain.AuditEntry)
	}
	return entries, args.Error(1)
}
