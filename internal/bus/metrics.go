package bus

import "github.com/five82/partysync/internal/metrics"

const subsystem = "bus"

var (
	requestDuration = metrics.NewHistogramWithBuckets(
		"request_duration_seconds",
		subsystem,
		"Time spent submitting a request to the coordinator",
		[]string{"request", "result"},
		[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	)
	queueWait = metrics.NewHistogramWithBuckets(
		"queue_wait_seconds",
		subsystem,
		"Time a request waited in the outbound queue",
		[]string{"request"},
		[]float64{0.001, 0.01, 0.1, 0.5, 1, 5},
	)
	queueDepth = metrics.NewGauge(
		"queue_depth",
		subsystem,
		"Requests waiting for delivery",
		[]string{},
	)
	connectedGauge = metrics.NewGauge(
		"connected",
		subsystem,
		"Whether the coordinator is reachable",
		[]string{},
	)
	rejected = metrics.NewCounter(
		"backpressure_total",
		subsystem,
		"Requests refused because the outbound queue was full",
		[]string{"request"},
	)
)
