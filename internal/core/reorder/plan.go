package reorder

import "taskboard/internal/core/domain"

// Move describes a task leaving (FromStatus, FromOrder) for (ToStatus, ToOrder)
// inside one organization.
type Move struct {
	TaskID         string
	OrganizationID string
	FromStatus     domain.TaskStatus
	FromOrder      int
	ToStatus       domain.TaskStatus
	ToOrder        int
}

func (m Move) CrossStatus() bool {
	return m.FromStatus != m.ToStatus
}

func (m Move) Noop() bool {
	return !m.CrossStatus() && m.FromOrder == m.ToOrder
}

func (m Move) kind() string {
	switch {
	case m.CrossStatus():
		return "cross_status"
	case m.Noop():
		return "noop"
	default:
		return "same_status"
	}
}

// Shift adds Delta to the order of every task of one bucket whose order
// falls in Range.
type Shift struct {
	OrganizationID string
	Status         domain.TaskStatus
	Range          domain.OrderRange
	Delta          int
}

// Plan returns the bucket shifts that make room for m while keeping the
// other tasks contiguous. The moved task is never inside a shifted range.
func Plan(m Move) []Shift {
	switch {
	case m.CrossStatus():
		return []Shift{
			{
				OrganizationID: m.OrganizationID,
				Status:         m.FromStatus,
				Range:          domain.OrderRange{From: m.FromOrder + 1, To: domain.NoUpperBound},
				Delta:          -1,
			},
			{
				OrganizationID: m.OrganizationID,
				Status:         m.ToStatus,
				Range:          domain.OrderRange{From: m.ToOrder, To: domain.NoUpperBound},
				Delta:          1,
			},
		}
	case m.ToOrder > m.FromOrder:
		return []Shift{{
			OrganizationID: m.OrganizationID,
			Status:         m.FromStatus,
			Range:          domain.OrderRange{From: m.FromOrder + 1, To: m.ToOrder},
			Delta:          -1,
		}}
	case m.ToOrder < m.FromOrder:
		return []Shift{{
			OrganizationID: m.OrganizationID,
			Status:         m.FromStatus,
			Range:          domain.OrderRange{From: m.ToOrder, To: m.FromOrder - 1},
			Delta:          1,
		}}
	default:
		return nil
	}
}

func clamp(order, upper int) int {
	if order < 0 {
		return 0
	}
	if order > upper {
		return upper
	}
	return order
}
