package reorder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_reorder_moves_total",
			Help: "Task moves applied by the reorder engine.",
		},
		[]string{"kind"},
	)

	gapsClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskboard_reorder_gaps_closed_total",
		Help: "Buckets compacted before a move because a delete had left a gap.",
	})

	invariantViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskboard_reorder_invariant_violations_total",
		Help: "Moves refused because a bucket held duplicate or negative orders.",
	})
)
