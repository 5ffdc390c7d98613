// Package metrics defines the Prometheus collectors shared across the
// application. All collectors are registered on the default registry via
// promauto and exposed by the HTTP server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// Route guard metrics
var (
	// GuardDenialsTotal tracks requests rejected before reaching a handler,
	// by reason (unauthenticated, wrong_role).
	GuardDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_denials_total",
			Help: "Requests denied by the route guard, by reason",
		},
		[]string{"reason"},
	)
)

// Application lifecycle metrics
var (
	// TransitionsTotal tracks application status transitions by target
	// status and outcome (ok, invalid, conflict, denied).
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_transitions_total",
			Help: "Application status transitions by target status and outcome",
		},
		[]string{"target", "outcome"},
	)

	ApplicationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_created_total",
			Help: "Applications successfully created",
		},
	)
)

// File storage collaborator metrics
var (
	FileStoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filestore_requests_total",
			Help: "Requests to the resume file storage collaborator, by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Redis metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks Redis connection errors
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total Redis connection errors",
		},
	)
)

// Circuit breaker metrics
var (
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)
