// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PenaltyRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "penalty_runs_total",
			Help: "Total number of penalty computation runs",
		},
	)

	RowsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "penalty_rows_dropped_total",
			Help: "Input rows dropped before penalty computation",
		},
		[]string{"reason"},
	)

	PenaltyHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "penalty_percent",
			Help:    "Distribution of assigned penalty percentages",
			Buckets: prometheus.LinearBuckets(0, 5, 21),
		},
		[]string{"schedule"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
