// Package metrics defines and registers all custom Prometheus metrics for the
// technotes API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "technotes"

// ── User lifecycle metrics ────────────────────────────────────────────────────

// UserOperationsTotal counts successful user lifecycle operations.
// Label:
//   - operation: "create", "update" or "delete"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of successful user lifecycle operations.",
	},
	[]string{"operation"},
)

// ── Note metrics ──────────────────────────────────────────────────────────────

// NoteOperationsTotal counts successful note operations.
// Label:
//   - operation: "create", "update" or "delete"
var NoteOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "note_operations_total",
		Help:      "Total number of successful note operations.",
	},
	[]string{"operation"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "rate_limited"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Error metrics ─────────────────────────────────────────────────────────────

// RequestErrorsTotal counts error responses rendered by the HTTP error handler.
// Label:
//   - kind: "invalid_input", "conflict", "not_found", "persistence",
//     "unauthorized", "forbidden", "http" or "internal"
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of error responses, by error kind.",
	},
	[]string{"kind"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit entries discarded because a worker channel was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped due to a full queue.",
	},
)
