// Package metrics defines and registers the custom Prometheus metrics of the
// todo service. It is the single source of truth for metric names, labels
// and help strings. HTTP request metrics come from echoprometheus and share
// the same namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "todos"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict", "policy_violation", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests stopped by the authorization guard.
// Label:
//   - reason: "missing_token", "invalid_token" or "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_guard_rejections_total",
		Help:      "Total number of requests rejected by the auth guard, by reason.",
	},
	[]string{"reason"},
)

// PasswordChangesTotal counts password change attempts.
// Label:
//   - result: "success", "incorrect_password", "policy_violation" or "error"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_password_changes_total",
		Help:      "Total number of password change attempts, by result.",
	},
	[]string{"result"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodoMutationsTotal counts successful todo writes.
// Label:
//   - op: "create", "replay", "update", "delete" or "admin_delete"
var TodoMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "todo_mutations_total",
		Help:      "Total number of successful todo mutations, by operation.",
	},
	[]string{"op"},
)
