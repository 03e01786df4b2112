//go:build integration
// +build integration

package tests

import (
	"net/http"
	"sync"
	"testing"

	dbadapter "taskboard/internal/adapter/db"
	"taskboard/internal/config"

	"github.com/stretchr/testify/suite"
)

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	owner client
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	router := newRouter(s.T(), repositories{
		db:            s.DB,
		driver:        config.StorageMySQL,
		tasks:         dbadapter.NewTaskRepository(s.DB),
		organizations: dbadapter.NewOrganizationRepository(s.DB),
		users:         dbadapter.NewUserRepository(s.DB),
		audit:         dbadapter.NewAuditRepository(s.DB),
	}, config.BootstrapConfig{
		OrganizationName: "Default Organization",
		OwnerEmail:       "owner@example.com",
		OwnerPassword:    "owner-password",
		OwnerName:        "Owner",
	})
	s.owner = client{t: s.T(), router: router}.login("owner@example.com", "owner-password")
}

func (s *TasksIntegrationSuite) TestHealthReportsDatabase() {
	rec := s.owner.do(http.MethodGet, "/api/health", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
}

func (s *TasksIntegrationSuite) TestReorderPersistsDenseOrders() {
	a := s.owner.createTask("a", nil)
	b := s.owner.createTask("b", nil)
	c := s.owner.createTask("c", nil)

	rec := s.owner.do(http.MethodPut, "/api/tasks/"+a.ID+"/reorder", map[string]any{"order": 2, "status": "todo"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().Equal([]string{b.ID, c.ID, a.ID}, bucket(s.owner.listTasks(), "todo"))

	rec = s.owner.do(http.MethodPut, "/api/tasks/"+b.ID+"/reorder", map[string]any{"order": 5, "status": "done"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var todo, done []int
	s.Require().NoError(s.DB.Select(&todo, "SELECT sort_order FROM tasks WHERE status = 'todo' ORDER BY sort_order"))
	s.Require().Equal([]int{0, 1}, todo)
	s.Require().NoError(s.DB.Select(&done, "SELECT sort_order FROM tasks WHERE status = 'done' ORDER BY sort_order"))
	s.Require().Equal([]int{0}, done)
}

func (s *TasksIntegrationSuite) TestConcurrentReordersKeepBucketDense() {
	ids := make([]string, 0, 6)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		ids = append(ids, s.owner.createTask(title, nil).ID)
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			status := "todo"
			if i%2 == 0 {
				status = "in_progress"
			}
			s.owner.do(http.MethodPut, "/api/tasks/"+id+"/reorder", map[string]any{"order": 0, "status": status})
		}(i, id)
	}
	wg.Wait()

	for _, status := range []string{"todo", "in_progress"} {
		var orders []int
		s.Require().NoError(s.DB.Select(&orders, "SELECT sort_order FROM tasks WHERE status = ? ORDER BY sort_order", status))
		for i, order := range orders {
			s.Require().Equal(i, order, status)
		}
	}
}

func (s *TasksIntegrationSuite) TestAuditEntriesArePersisted() {
	task := s.owner.createTask("audited", nil)

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(*) FROM audit_logs WHERE resource_id = ?", task.ID))
	s.Require().Equal(1, count)
}
