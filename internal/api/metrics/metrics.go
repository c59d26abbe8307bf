// Package metrics defines and registers all custom Prometheus metrics for the
// CRM API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on import; HTTP
// request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_request" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict", "invalid_request" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokensRejectedTotal counts bearer tokens refused by the auth middleware.
// Label:
//   - reason: "missing", "malformed", "invalid", "expired" or "revoked"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of rejected bearer tokens, by reason.",
	},
	[]string{"reason"},
)

// PermissionDeniedTotal counts requests refused for a missing permission.
var PermissionDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denied_total",
		Help:      "Total number of requests denied by permission checks.",
	},
	[]string{"permission"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// SessionAuditTotal counts login session audit writes.
// Label:
//   - result: "recorded", "failed" (sink error) or "dropped" (queue full)
var SessionAuditTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_audit_total",
		Help:      "Total number of login session audit records, by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the sessions waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of sessions pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// RecordsCreatedTotal counts tenant records created through the API.
// Label:
//   - resource: "import" or "lead"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by resource.",
	},
	[]string{"resource"},
)
