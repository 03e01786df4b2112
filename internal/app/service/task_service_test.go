package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/policy"
	"taskboard/internal/core/reorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (s *recordingSink) Record(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func callerFor(userID string, role domain.Role, orgID, parentOrgID string) domain.Caller {
	return domain.Caller{
		UserID:               userID,
		Email:                userID + "@example.com",
		Role:                 role,
		OrganizationID:       orgID,
		ParentOrganizationID: parentOrgID,
		Permissions:          policy.PermissionsFor(role),
	}
}

func ptr[T any](v T) *T {
	return &v
}

type TaskServiceSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *memory.TaskRepository
	sink    *recordingSink
	service *service.TaskService

	owner     domain.Caller
	admin     domain.Caller
	viewer    domain.Caller
	childUser domain.Caller
	outsider  domain.Caller
}

func (s *TaskServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewTaskRepository()
	s.sink = &recordingSink{}
	s.service = service.NewTaskService(s.repo, reorder.NewEngine(zap.NewNop()), s.sink)

	s.owner = callerFor("owner", domain.RoleOwner, "org-1", "")
	s.admin = callerFor("admin", domain.RoleAdmin, "org-1", "")
	s.viewer = callerFor("viewer", domain.RoleViewer, "org-1", "")
	s.childUser = callerFor("child", domain.RoleAdmin, "org-1a", "org-1")
	s.outsider = callerFor("outsider", domain.RoleOwner, "org-9", "")
}

func TestTaskServiceSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) create(caller domain.Caller, title string, status domain.TaskStatus) domain.Task {
	task, err := s.service.CreateTask(s.ctx, caller, domain.CreateTaskInput{Title: title, Status: &status})
	s.Require().NoError(err)
	return task
}

func (s *TaskServiceSuite) bucket(orgID string, status domain.TaskStatus) map[string]int {
	positions, err := s.repo.BucketPositions(s.ctx, orgID, status)
	s.Require().NoError(err)
	out := make(map[string]int, len(positions))
	for _, p := range positions {
		out[p.ID] = p.Order
	}
	return out
}

func (s *TaskServiceSuite) TestCreateTask_AppendsToBucketWithDefaults() {
	first, err := s.service.CreateTask(s.ctx, s.owner, domain.CreateTaskInput{Title: "  First  "})
	s.Require().NoError(err)
	second := s.create(s.admin, "Second", domain.TaskStatusTodo)
	other := s.create(s.owner, "Other column", domain.TaskStatusDone)

	s.Equal("First", first.Title)
	s.Equal(domain.TaskStatusTodo, first.Status)
	s.Equal(domain.TaskPriorityMedium, first.Priority)
	s.Equal(domain.TaskCategoryOther, first.Category)
	s.Equal("org-1", first.OrganizationID)
	s.Equal("owner", first.OwnerID)
	s.Equal(0, first.Order)
	s.Equal(1, second.Order)
	s.Equal(0, other.Order)
}

func (s *TaskServiceSuite) TestCreateTask_RecordsAuditWithOrigin() {
	ctx := domain.ContextWithOrigin(s.ctx, "203.0.113.7")

	task, err := s.service.CreateTask(ctx, s.owner, domain.CreateTaskInput{Title: "Audit me"})
	s.Require().NoError(err)

	s.Require().Len(s.sink.entries, 1)
	entry := s.sink.entries[0]
	s.Equal(domain.AuditActionCreate, entry.Action)
	s.Equal(domain.AuditResourceTask, entry.Resource)
	s.Equal(task.ID, entry.ResourceID)
	s.Equal("owner", entry.UserID)
	s.Equal("Created task: Audit me", entry.Details)
	s.Require().NotNil(entry.Origin)
	s.Equal("203.0.113.7", *entry.Origin)
}

func (s *TaskServiceSuite) TestCreateTask_Validation() {
	_, err := s.service.CreateTask(s.ctx, s.viewer, domain.CreateTaskInput{Title: "Nope"})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.CreateTask(s.ctx, s.owner, domain.CreateTaskInput{Title: "   "})
	s.ErrorIs(err, domain.ErrInvalidInput)

	_, err = s.service.CreateTask(s.ctx, s.owner, domain.CreateTaskInput{Title: "x", Priority: ptr(domain.TaskPriority("urgent"))})
	s.ErrorIs(err, domain.ErrInvalidInput)

	s.Empty(s.sink.entries)
}

func (s *TaskServiceSuite) TestCreateTask_AuditFailureKeepsTask() {
	s.sink.err = errors.New("audit store down")

	task, err := s.service.CreateTask(s.ctx, s.owner, domain.CreateTaskInput{Title: "Survives"})
	s.Require().NoError(err)

	stored, err := s.repo.FindByID(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal("Survives", stored.Title)
}

func (s *TaskServiceSuite) TestListTasks_ViewerParityAndOrdering() {
	s.create(s.owner, "done", domain.TaskStatusDone)
	s.create(s.owner, "todo-0", domain.TaskStatusTodo)
	s.create(s.owner, "progress", domain.TaskStatusInProgress)
	s.create(s.owner, "todo-1", domain.TaskStatusTodo)
	s.create(s.outsider, "elsewhere", domain.TaskStatusTodo)

	ownerTasks, err := s.service.ListTasks(s.ctx, s.owner)
	s.Require().NoError(err)
	viewerTasks, err := s.service.ListTasks(s.ctx, s.viewer)
	s.Require().NoError(err)

	s.Equal(ownerTasks, viewerTasks)
	titles := make([]string, 0, len(ownerTasks))
	for _, task := range ownerTasks {
		titles = append(titles, task.Title)
	}
	s.Equal([]string{"todo-0", "todo-1", "progress", "done"}, titles)
}

func (s *TaskServiceSuite) TestListTasks_VisibilityIsUpwardOnly() {
	s.create(s.owner, "parent task", domain.TaskStatusTodo)
	s.create(s.childUser, "child task", domain.TaskStatusTodo)

	childView, err := s.service.ListTasks(s.ctx, s.childUser)
	s.Require().NoError(err)
	s.Len(childView, 2)

	parentView, err := s.service.ListTasks(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().Len(parentView, 1)
	s.Equal("parent task", parentView[0].Title)
}

func (s *TaskServiceSuite) TestGetTask_ScopeAndNotFound() {
	task := s.create(s.owner, "Scoped", domain.TaskStatusTodo)

	got, err := s.service.GetTask(s.ctx, s.viewer, task.ID)
	s.Require().NoError(err)
	s.Equal(task.ID, got.ID)

	_, err = s.service.GetTask(s.ctx, s.outsider, task.ID)
	s.ErrorIs(err, domain.ErrAccessDenied)

	_, err = s.service.GetTask(s.ctx, s.owner, "missing")
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskServiceSuite) TestAdminOwnershipAsymmetry() {
	task := s.create(s.owner, "Owner's task", domain.TaskStatusTodo)

	err := s.service.DeleteTask(s.ctx, s.admin, task.ID)
	s.ErrorIs(err, domain.ErrForbidden)

	updated, err := s.service.UpdateTask(s.ctx, s.admin, task.ID, domain.UpdateTaskInput{Title: ptr("Renamed by admin")})
	s.Require().NoError(err)
	s.Equal("Renamed by admin", updated.Title)
}

func (s *TaskServiceSuite) TestUpdateTask_Rules() {
	task := s.create(s.owner, "Rules", domain.TaskStatusTodo)

	_, err := s.service.UpdateTask(s.ctx, s.viewer, task.ID, domain.UpdateTaskInput{Title: ptr("x")})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.UpdateTask(s.ctx, s.outsider, task.ID, domain.UpdateTaskInput{Title: ptr("x")})
	s.ErrorIs(err, domain.ErrAccessDenied)

	_, err = s.service.UpdateTask(s.ctx, s.childUser, task.ID, domain.UpdateTaskInput{Title: ptr("x")})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.UpdateTask(s.ctx, s.owner, "missing", domain.UpdateTaskInput{})
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *TaskServiceSuite) TestUpdateTask_PartialFields() {
	task, err := s.service.CreateTask(s.ctx, s.owner, domain.CreateTaskInput{
		Title:       "Partial",
		Description: ptr("keep me"),
		Category:    ptr(domain.TaskCategoryWork),
	})
	s.Require().NoError(err)

	updated, err := s.service.UpdateTask(s.ctx, s.owner, task.ID, domain.UpdateTaskInput{Priority: ptr(domain.TaskPriorityHigh)})
	s.Require().NoError(err)
	s.Equal(domain.TaskPriorityHigh, updated.Priority)
	s.Equal(domain.TaskCategoryWork, updated.Category)
	s.Require().NotNil(updated.Description)
	s.Equal("keep me", *updated.Description)

	cleared, err := s.service.UpdateTask(s.ctx, s.owner, task.ID, domain.UpdateTaskInput{DescriptionSet: true})
	s.Require().NoError(err)
	s.Nil(cleared.Description)

	s.Require().Len(s.sink.entries, 3)
	s.Equal("Updated task: Partial", s.sink.entries[2].Details)
}

func (s *TaskServiceSuite) TestUpdateTask_StatusChangeMovesToEndOfColumn() {
	a := s.create(s.owner, "a", domain.TaskStatusTodo)
	b := s.create(s.owner, "b", domain.TaskStatusTodo)
	c := s.create(s.owner, "c", domain.TaskStatusTodo)
	d := s.create(s.owner, "d", domain.TaskStatusDone)

	updated, err := s.service.UpdateTask(s.ctx, s.owner, a.ID, domain.UpdateTaskInput{Status: ptr(domain.TaskStatusDone)})
	s.Require().NoError(err)

	s.Equal(domain.TaskStatusDone, updated.Status)
	s.Equal(1, updated.Order)
	s.Equal(map[string]int{b.ID: 0, c.ID: 1}, s.bucket("org-1", domain.TaskStatusTodo))
	s.Equal(map[string]int{d.ID: 0, a.ID: 1}, s.bucket("org-1", domain.TaskStatusDone))
}

func (s *TaskServiceSuite) TestUpdateTask_StatusChangeOutsideOwnOrganizationRefused() {
	childOwner := callerFor("child-owner", domain.RoleOwner, "org-1a", "org-1")
	a := s.create(s.owner, "a", domain.TaskStatusTodo)
	b := s.create(s.owner, "b", domain.TaskStatusTodo)

	_, err := s.service.UpdateTask(s.ctx, childOwner, a.ID, domain.UpdateTaskInput{Status: ptr(domain.TaskStatusDone)})
	s.ErrorIs(err, domain.ErrForbidden)
	s.Equal(map[string]int{a.ID: 0, b.ID: 1}, s.bucket("org-1", domain.TaskStatusTodo))
	s.Empty(s.bucket("org-1", domain.TaskStatusDone))

	renamed, err := s.service.UpdateTask(s.ctx, childOwner, a.ID, domain.UpdateTaskInput{Title: ptr("renamed")})
	s.Require().NoError(err)
	s.Equal("renamed", renamed.Title)
	s.Equal(domain.TaskStatusTodo, renamed.Status)
}

func (s *TaskServiceSuite) TestDeleteTask_GapClosedByNextMove() {
	a := s.create(s.owner, "a", domain.TaskStatusTodo)
	b := s.create(s.owner, "b", domain.TaskStatusTodo)
	c := s.create(s.owner, "c", domain.TaskStatusTodo)

	s.Require().NoError(s.service.DeleteTask(s.ctx, s.owner, b.ID))
	s.Equal(map[string]int{a.ID: 0, c.ID: 2}, s.bucket("org-1", domain.TaskStatusTodo))

	_, err := s.service.ReorderTask(s.ctx, s.owner, c.ID, domain.ReorderTaskInput{Status: domain.TaskStatusTodo, Order: 0})
	s.Require().NoError(err)
	s.Equal(map[string]int{c.ID: 0, a.ID: 1}, s.bucket("org-1", domain.TaskStatusTodo))

	s.Require().Len(s.sink.entries, 4)
	s.Equal(domain.AuditActionDelete, s.sink.entries[3].Action)
}

func (s *TaskServiceSuite) TestDeleteTask_Rules() {
	own := s.create(s.admin, "admin's own", domain.TaskStatusTodo)

	s.ErrorIs(s.service.DeleteTask(s.ctx, s.viewer, own.ID), domain.ErrForbidden)
	s.ErrorIs(s.service.DeleteTask(s.ctx, s.outsider, own.ID), domain.ErrAccessDenied)
	s.ErrorIs(s.service.DeleteTask(s.ctx, s.owner, "missing"), domain.ErrTaskNotFound)
	s.NoError(s.service.DeleteTask(s.ctx, s.admin, own.ID))
}

func (s *TaskServiceSuite) TestReorderTask_ReturnsFullBoard() {
	t0 := s.create(s.owner, "T0", domain.TaskStatusTodo)
	t1 := s.create(s.owner, "T1", domain.TaskStatusTodo)
	t2 := s.create(s.owner, "T2", domain.TaskStatusInProgress)

	board, err := s.service.ReorderTask(s.ctx, s.admin, t0.ID, domain.ReorderTaskInput{Status: domain.TaskStatusInProgress, Order: 0})
	s.Require().NoError(err)

	s.Require().Len(board, 3)
	s.Equal(t1.ID, board[0].ID)
	s.Equal(0, board[0].Order)
	s.Equal(t0.ID, board[1].ID)
	s.Equal(domain.TaskStatusInProgress, board[1].Status)
	s.Equal(0, board[1].Order)
	s.Equal(t2.ID, board[2].ID)
	s.Equal(1, board[2].Order)
}

func (s *TaskServiceSuite) TestReorderTask_NoopKeepsBoard() {
	s.create(s.owner, "a", domain.TaskStatusTodo)
	b := s.create(s.owner, "b", domain.TaskStatusTodo)
	s.create(s.owner, "c", domain.TaskStatusTodo)

	before, err := s.service.ListTasks(s.ctx, s.owner)
	s.Require().NoError(err)
	after, err := s.service.ReorderTask(s.ctx, s.owner, b.ID, domain.ReorderTaskInput{Status: domain.TaskStatusTodo, Order: 1})
	s.Require().NoError(err)

	s.Require().Len(after, len(before))
	for i := range before {
		s.Equal(before[i].ID, after[i].ID)
		s.Equal(before[i].Order, after[i].Order)
	}
}

func (s *TaskServiceSuite) TestReorderTask_Rules() {
	parentTask := s.create(s.owner, "parent", domain.TaskStatusTodo)

	_, err := s.service.ReorderTask(s.ctx, s.viewer, parentTask.ID, domain.ReorderTaskInput{Status: domain.TaskStatusDone})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.ReorderTask(s.ctx, s.outsider, parentTask.ID, domain.ReorderTaskInput{Status: domain.TaskStatusDone})
	s.ErrorIs(err, domain.ErrAccessDenied)

	_, err = s.service.ReorderTask(s.ctx, s.childUser, parentTask.ID, domain.ReorderTaskInput{Status: domain.TaskStatusDone})
	s.ErrorIs(err, domain.ErrForbidden)

	_, err = s.service.ReorderTask(s.ctx, s.owner, "missing", domain.ReorderTaskInput{Status: domain.TaskStatusDone})
	s.ErrorIs(err, domain.ErrTaskNotFound)

	got, err := s.repo.FindByID(s.ctx, parentTask.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusTodo, got.Status)
}

func TestTaskService_ConcurrentReordersKeepContiguity(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTaskRepository()
	svc := service.NewTaskService(repo, reorder.NewEngine(zap.NewNop()), &recordingSink{})
	owner := callerFor("owner", domain.RoleOwner, "org-1", "")

	ids := make([]string, 0, 6)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		task, err := svc.CreateTask(ctx, owner, domain.CreateTaskInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := domain.ReorderTaskInput{Status: domain.TaskStatuses[i%3], Order: (i * 7) % 5}
			_, err := svc.ReorderTask(ctx, owner, ids[i%len(ids)], target)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, status := range domain.TaskStatuses {
		positions, err := repo.BucketPositions(ctx, "org-1", status)
		require.NoError(t, err)
		require.True(t, reorder.Contiguous(positions), "bucket %s: %v", status, positions)
	}
}
