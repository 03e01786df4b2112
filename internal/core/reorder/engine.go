package reorder

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"

	"go.uber.org/zap"
)

// Engine moves tasks between positions. It computes and applies the shifts but
// relies on the caller to run it inside ports.TaskRepository.WithinTx.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.L()
	}
	return &Engine{logger: logger}
}

// MoveTask places task at target inside the buckets of orgID and saves it.
// The requested order is clamped to the bucket bounds. task is updated in place.
func (e *Engine) MoveTask(
	ctx context.Context,
	store ports.TaskStore,
	task *domain.Task,
	orgID string,
	target domain.ReorderTaskInput,
) (Move, error) {
	if task.OrganizationID != orgID {
		return Move{}, fmt.Errorf("%w: cross-organization reorder is not supported", domain.ErrForbidden)
	}
	if !target.Status.Valid() {
		return Move{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, target.Status)
	}

	buckets := make(map[domain.TaskStatus][]domain.TaskPosition, 2)
	statuses := []domain.TaskStatus{task.Status}
	if target.Status != task.Status {
		statuses = append(statuses, target.Status)
	}
	// Lock buckets in column order so two cross-status moves cannot deadlock.
	slices.SortFunc(statuses, func(a, b domain.TaskStatus) int { return cmp.Compare(a.Rank(), b.Rank()) })
	for _, status := range statuses {
		positions, err := store.BucketPositions(ctx, orgID, status)
		if err != nil {
			return Move{}, fmt.Errorf("load bucket %s: %w", status, err)
		}
		positions, err = e.compact(ctx, store, orgID, status, positions)
		if err != nil {
			return Move{}, err
		}
		buckets[status] = positions
	}

	from := buckets[task.Status]
	idx := slices.IndexFunc(from, func(p domain.TaskPosition) bool { return p.ID == task.ID })
	if idx < 0 {
		invariantViolationsTotal.Inc()
		e.logger.Error("task missing from its own bucket",
			zap.String("task_id", task.ID),
			zap.String("organization_id", orgID),
			zap.String("status", string(task.Status)),
		)
		return Move{}, fmt.Errorf("%w: task %s not in bucket %s", domain.ErrInvariantViolation, task.ID, task.Status)
	}

	upper := len(from) - 1
	if target.Status != task.Status {
		upper = len(buckets[target.Status])
	}
	move := Move{
		TaskID:         task.ID,
		OrganizationID: orgID,
		FromStatus:     task.Status,
		FromOrder:      from[idx].Order,
		ToStatus:       target.Status,
		ToOrder:        clamp(target.Order, upper),
	}

	for _, shift := range Plan(move) {
		if _, err := store.ShiftOrders(ctx, shift.OrganizationID, shift.Status, shift.Range, shift.Delta); err != nil {
			return Move{}, fmt.Errorf("shift bucket %s: %w", shift.Status, err)
		}
	}

	task.Status = move.ToStatus
	task.Order = move.ToOrder
	if err := store.Save(ctx, task); err != nil {
		return Move{}, fmt.Errorf("save moved task: %w", err)
	}

	movesTotal.WithLabelValues(move.kind()).Inc()
	return move, nil
}

// compact renumbers a bucket to 0..n-1 when a delete left gaps in it. Duplicate
// or negative orders cannot come from a delete and are refused.
func (e *Engine) compact(
	ctx context.Context,
	store ports.TaskStore,
	orgID string,
	status domain.TaskStatus,
	positions []domain.TaskPosition,
) ([]domain.TaskPosition, error) {
	sorted := slices.Clone(positions)
	slices.SortFunc(sorted, func(a, b domain.TaskPosition) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	gaps := false
	for i, p := range sorted {
		if p.Order < 0 || (i > 0 && p.Order == sorted[i-1].Order) {
			invariantViolationsTotal.Inc()
			e.logger.Error("order invariant violated",
				zap.String("organization_id", orgID),
				zap.String("status", string(status)),
				zap.Any("positions", sorted),
			)
			return nil, fmt.Errorf("%w: bucket %s/%s", domain.ErrInvariantViolation, orgID, status)
		}
		if p.Order != i {
			gaps = true
		}
	}
	if !gaps {
		return sorted, nil
	}

	e.logger.Warn("closing order gaps",
		zap.String("organization_id", orgID),
		zap.String("status", string(status)),
		zap.Int("tasks", len(sorted)),
	)
	for i := range sorted {
		if sorted[i].Order == i {
			continue
		}
		if err := store.SetOrder(ctx, sorted[i].ID, i); err != nil {
			return nil, fmt.Errorf("compact bucket %s: %w", status, err)
		}
		sorted[i].Order = i
	}
	gapsClosedTotal.Inc()
	return sorted, nil
}

// Contiguous reports whether positions hold exactly the orders 0..n-1.
func Contiguous(positions []domain.TaskPosition) bool {
	seen := make([]bool, len(positions))
	for _, p := range positions {
		if p.Order < 0 || p.Order >= len(positions) || seen[p.Order] {
			return false
		}
		seen[p.Order] = true
	}
	return true
}
