package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const taskColumns = `id, title, description, status, priority, category, sort_order,
  owner_id, organization_id, due_date, created_at, updated_at`

const (
	findTaskByIDQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	findTasksByOrganizationsQuery = `SELECT ` + taskColumns + ` FROM tasks
WHERE organization_id IN (?)
ORDER BY FIELD(status, 'todo', 'in_progress', 'done'), sort_order, id`

	maxOrderQuery = `SELECT MAX(sort_order) FROM tasks WHERE organization_id = ? AND status = ?`

	bucketPositionsQuery = `SELECT id, sort_order FROM tasks
WHERE organization_id = ? AND status = ?
ORDER BY sort_order, id`

	saveTaskQuery = `INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :title, :description, :status, :priority, :category, :sort_order,
  :owner_id, :organization_id, :due_date, :created_at, :updated_at)
ON DUPLICATE KEY UPDATE
  title = VALUES(title),
  description = VALUES(description),
  status = VALUES(status),
  priority = VALUES(priority),
  category = VALUES(category),
  sort_order = VALUES(sort_order),
  due_date = VALUES(due_date),
  updated_at = VALUES(updated_at)`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

	shiftOrdersQuery = `UPDATE tasks SET sort_order = sort_order + ?
WHERE organization_id = ? AND status = ? AND sort_order BETWEEN ? AND ?`

	setOrderQuery = `UPDATE tasks SET sort_order = ? WHERE id = ?`

	forUpdate = ` FOR UPDATE`
)

type taskRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	Status         string         `db:"status"`
	Priority       string         `db:"priority"`
	Category       string         `db:"category"`
	SortOrder      int            `db:"sort_order"`
	OwnerID        string         `db:"owner_id"`
	OrganizationID string         `db:"organization_id"`
	DueDate        sql.NullTime   `db:"due_date"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type positionRow struct {
	ID        string `db:"id"`
	SortOrder int    `db:"sort_order"`
}

// TaskRepository stores tasks in MySQL. Reads made through WithinTx take
// row locks that hold until commit.
type TaskRepository struct {
	taskStore
	db *sqlx.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{taskStore: taskStore{q: db}, db: db}
}

func (r *TaskRepository) WithinTx(ctx context.Context, fn func(store ports.TaskStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&taskStore{q: tx, lock: forUpdate}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.L().Error("task transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type taskStore struct {
	q    sqlx.ExtContext
	lock string
}

func (s *taskStore) FindByID(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, s.q, &row, findTaskByIDQuery+s.lock, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func (s *taskStore) FindByOrganizations(ctx context.Context, orgIDs []string) ([]domain.Task, error) {
	if len(orgIDs) == 0 {
		return []domain.Task{}, nil
	}

	query, args, err := sqlx.In(findTasksByOrganizationsQuery, orgIDs)
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, s.q.Rebind(query+s.lock), args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (s *taskStore) MaxOrder(ctx context.Context, orgID string, status domain.TaskStatus) (int, bool, error) {
	var maxOrder sql.NullInt64
	if err := sqlx.GetContext(ctx, s.q, &maxOrder, maxOrderQuery+s.lock, orgID, string(status)); err != nil {
		return 0, false, err
	}
	if !maxOrder.Valid {
		return 0, false, nil
	}
	return int(maxOrder.Int64), true, nil
}

func (s *taskStore) BucketPositions(ctx context.Context, orgID string, status domain.TaskStatus) ([]domain.TaskPosition, error) {
	var rows []positionRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, bucketPositionsQuery+s.lock, orgID, string(status)); err != nil {
		return nil, err
	}

	positions := make([]domain.TaskPosition, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, domain.TaskPosition{ID: row.ID, Order: row.SortOrder})
	}
	return positions, nil
}

func (s *taskStore) Save(ctx context.Context, task *domain.Task) error {
	if _, err := sqlx.NamedExecContext(ctx, s.q, saveTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *taskStore) ShiftOrders(
	ctx context.Context,
	orgID string,
	status domain.TaskStatus,
	rng domain.OrderRange,
	delta int,
) (int64, error) {
	res, err := s.q.ExecContext(ctx, shiftOrdersQuery, delta, orgID, string(status), rng.From, rng.To)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *taskStore) SetOrder(ctx context.Context, id string, order int) error {
	res, err := s.q.ExecContext(ctx, setOrderQuery, order, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:             row.ID,
		Title:          row.Title,
		Status:         domain.TaskStatus(row.Status),
		Priority:       domain.TaskPriority(row.Priority),
		Category:       domain.TaskCategory(row.Category),
		Order:          row.SortOrder,
		OwnerID:        row.OwnerID,
		OrganizationID: row.OrganizationID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}

func mapDomainTaskToTaskRow(task *domain.Task) taskRow {
	row := taskRow{
		ID:             task.ID,
		Title:          task.Title,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		Category:       string(task.Category),
		SortOrder:      task.Order,
		OwnerID:        task.OwnerID,
		OrganizationID: task.OrganizationID,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.Description != nil {
		row.Description = sql.NullString{String: *task.Description, Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	return row
}
