// Package metrics defines and registers the custom Prometheus metrics for
// the payment portal. It is the single source of truth for metric names,
// labels, and help strings. All metrics register against the default
// registry at package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "payment_portal"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", or "invalid_credentials"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// PolicyDenialsTotal counts policy engine denials.
// Label:
//   - reason: "insufficient_role", "not_resource_owner", or "invalid_state_for_operation"
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of operations denied by the authorization policy.",
	},
	[]string{"reason"},
)

// ── Payment lifecycle metrics ─────────────────────────────────────────────────

// PaymentsCreatedTotal counts newly submitted payments.
var PaymentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_created_total",
		Help:      "Total number of payments submitted.",
	},
)

// PaymentsDecidedTotal counts terminal transitions.
// Label:
//   - outcome: "verified" or "denied"
var PaymentsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_decided_total",
		Help:      "Total number of payments moved to a terminal state, by outcome.",
	},
	[]string{"outcome"},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditEventsTotal counts audit entries that completed processing.
// Label:
//   - result: "ok" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit entries processed, labelled by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of audit entries waiting in each
// dispatcher worker channel.
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
