package app

import "github.com/five82/partysync/internal/metrics"

const subsystem = "app"

var (
	pollDuration = metrics.NewHistogramWithBuckets(
		"poll_duration_seconds",
		subsystem,
		"Time spent reading coordinator state",
		[]string{"result"},
		[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	)
	actions = metrics.NewCounter(
		"actions_total",
		subsystem,
		"User actions applied to the party client",
		[]string{"action", "result"},
	)
	resets = metrics.NewCounter(
		"resets_total",
		subsystem,
		"Party client resets after losing the coordinator",
		[]string{},
	)
)
