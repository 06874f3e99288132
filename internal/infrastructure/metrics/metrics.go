package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level collectors registered against the default registry at init.
// Handlers and middleware increment these directly.
var (
	// Loan metrics
	LoansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loantrack_loans_created_total",
		Help: "Total number of loans created",
	})
	LoansDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loantrack_loans_deleted_total",
		Help: "Total number of loans deleted",
	})

	// Payment metrics
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loantrack_payments_recorded_total",
		Help: "Total number of payments recorded",
	})
	PaymentAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loantrack_payment_amount",
		Help:    "Recorded payment amounts",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
	})

	// Schedule metrics
	ScheduleComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loantrack_schedule_compute_duration_seconds",
		Help:    "Duration of schedule reconciliation",
		Buckets: prometheus.DefBuckets,
	})
	ScheduleCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loantrack_schedule_cache_hits_total",
		Help: "Total schedule cache hits",
	})
	ScheduleCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loantrack_schedule_cache_misses_total",
		Help: "Total schedule cache misses",
	})

	// API metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loantrack_http_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Database metrics
	DBQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_db_queries_total",
			Help: "Total database queries",
		},
		[]string{"operation", "table"},
	)
	DBErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_db_errors_total",
			Help: "Total database errors",
		},
		[]string{"operation"},
	)

	// Redis metrics
	RedisOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_redis_operations_total",
			Help: "Total Redis operations",
		},
		[]string{"operation"},
	)
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loantrack_redis_errors_total",
			Help: "Total Redis errors",
		},
		[]string{"operation"},
	)
)
