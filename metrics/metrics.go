package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanchallenge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fanchallenge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fanchallenge_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanchallenge_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// SelectionRuns counts winner selection runs by mode and outcome
	SelectionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanchallenge_selection_runs_total",
			Help: "Total number of winner selection runs",
		},
		[]string{"mode", "outcome"},
	)

	// SelectionDuration measures winner selection duration
	SelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fanchallenge_selection_duration_seconds",
			Help:    "Winner selection duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PayoutInstructions counts emitted payout instructions by destination and status
	PayoutInstructions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanchallenge_payout_instructions_total",
			Help: "Total number of payout instructions emitted during approval",
		},
		[]string{"destination", "status"},
	)

	// DistributedAmount sums the prize amounts successfully paid out
	DistributedAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fanchallenge_distributed_amount_total",
			Help: "Total prize amount successfully distributed",
		},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fanchallenge_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fanchallenge_goroutine_count",
			Help: "Number of goroutines",
		},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fanchallenge_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordSelectionRun records one selection engine invocation
func RecordSelectionRun(mode string, outcome string, startTime time.Time) {
	SelectionRuns.WithLabelValues(mode, outcome).Inc()
	SelectionDuration.Observe(time.Since(startTime).Seconds())
}
