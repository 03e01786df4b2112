package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// TaskRepository keeps tasks in a map. Each transaction holds the lock for its
// whole duration and works on a copy that replaces the map on commit.
type TaskRepository struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]domain.Task)}
}

func (r *TaskRepository) WithinTx(ctx context.Context, fn func(store ports.TaskStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	work := maps.Clone(r.tasks)
	if err := fn(&taskTx{tasks: work}); err != nil {
		return err
	}
	r.tasks = work
	return nil
}

func (r *TaskRepository) read() *taskTx {
	return &taskTx{tasks: r.tasks}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read().FindByID(ctx, id)
}

func (r *TaskRepository) FindByOrganizations(ctx context.Context, orgIDs []string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read().FindByOrganizations(ctx, orgIDs)
}

func (r *TaskRepository) MaxOrder(ctx context.Context, orgID string, status domain.TaskStatus) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read().MaxOrder(ctx, orgID, status)
}

func (r *TaskRepository) BucketPositions(ctx context.Context, orgID string, status domain.TaskStatus) ([]domain.TaskPosition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read().BucketPositions(ctx, orgID, status)
}

func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	return r.WithinTx(ctx, func(store ports.TaskStore) error {
		return store.Save(ctx, task)
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.WithinTx(ctx, func(store ports.TaskStore) error {
		return store.Delete(ctx, id)
	})
}

func (r *TaskRepository) ShiftOrders(ctx context.Context, orgID string, status domain.TaskStatus, rng domain.OrderRange, delta int) (int64, error) {
	var affected int64
	err := r.WithinTx(ctx, func(store ports.TaskStore) error {
		var err error
		affected, err = store.ShiftOrders(ctx, orgID, status, rng, delta)
		return err
	})
	return affected, err
}

func (r *TaskRepository) SetOrder(ctx context.Context, id string, order int) error {
	return r.WithinTx(ctx, func(store ports.TaskStore) error {
		return store.SetOrder(ctx, id, order)
	})
}

type taskTx struct {
	tasks map[string]domain.Task
}

func (t *taskTx) FindByID(_ context.Context, id string) (domain.Task, error) {
	task, ok := t.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (t *taskTx) FindByOrganizations(_ context.Context, orgIDs []string) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	for _, task := range t.tasks {
		if slices.Contains(orgIDs, task.OrganizationID) {
			tasks = append(tasks, task)
		}
	}
	slices.SortFunc(tasks, compareTasks)
	return tasks, nil
}

func (t *taskTx) MaxOrder(_ context.Context, orgID string, status domain.TaskStatus) (int, bool, error) {
	maxOrder, found := 0, false
	for _, task := range t.tasks {
		if task.OrganizationID != orgID || task.Status != status {
			continue
		}
		if !found || task.Order > maxOrder {
			maxOrder, found = task.Order, true
		}
	}
	return maxOrder, found, nil
}

func (t *taskTx) BucketPositions(_ context.Context, orgID string, status domain.TaskStatus) ([]domain.TaskPosition, error) {
	positions := make([]domain.TaskPosition, 0)
	for _, task := range t.tasks {
		if task.OrganizationID == orgID && task.Status == status {
			positions = append(positions, domain.TaskPosition{ID: task.ID, Order: task.Order})
		}
	}
	slices.SortFunc(positions, func(a, b domain.TaskPosition) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return positions, nil
}

func (t *taskTx) Save(_ context.Context, task *domain.Task) error {
	t.tasks[task.ID] = *task
	return nil
}

func (t *taskTx) Delete(_ context.Context, id string) error {
	if _, ok := t.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(t.tasks, id)
	return nil
}

func (t *taskTx) ShiftOrders(_ context.Context, orgID string, status domain.TaskStatus, rng domain.OrderRange, delta int) (int64, error) {
	var affected int64
	for id, task := range t.tasks {
		if task.OrganizationID != orgID || task.Status != status || !rng.Contains(task.Order) {
			continue
		}
		task.Order += delta
		t.tasks[id] = task
		affected++
	}
	return affected, nil
}

func (t *taskTx) SetOrder(_ context.Context, id string, order int) error {
	task, ok := t.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Order = order
	t.tasks[id] = task
	return nil
}

func compareTasks(a, b domain.Task) int {
	if c := cmp.Compare(a.Status.Rank(), b.Status.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
