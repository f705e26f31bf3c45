// Package metrics defines and registers all custom Prometheus metrics for the
// blog service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registrations.",
	},
)

// SessionActive is 1 while a user is signed in, 0 otherwise.
var SessionActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_active",
		Help:      "Whether a session is currently established.",
	},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostMutationsTotal counts successful post mutations.
// Label:
//   - op: "create", "update" or "delete"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of post mutations written to the store.",
	},
	[]string{"op"},
)

// PostsStored tracks the size of the in-memory post collection.
var PostsStored = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "posts_stored",
		Help:      "Number of posts in the collection.",
	},
)

// ValidationFailuresTotal counts rejected post fields.
// Label:
//   - field: "title" or "content"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of post fields rejected by validation.",
	},
	[]string{"field"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationDuration measures key-value store calls.
// Labels:
//   - backend: "memory", "redis", "mongo", "postgres" or "sqlite"
//   - op: "get", "set" or "remove"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of key-value store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend", "op"},
)

// StoreErrorsTotal counts failed key-value store calls.
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of failed key-value store operations.",
	},
	[]string{"backend", "op"},
)
