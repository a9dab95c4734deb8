// Package metrics defines and registers all custom Prometheus metrics for the
// El Buen Sabor ordering system. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts successful logins.
// Labels:
//   - role: the role the session was created with (e.g. "CLIENTE")
//   - method: "password" or "google"
var SessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions created, by role and login method.",
	},
	[]string{"role", "method"},
)

// SessionsEndedTotal counts terminated sessions.
// Label:
//   - reason: "logout" (explicit) or "inactivity" (timed out)
var SessionsEndedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions ended, by reason.",
	},
	[]string{"reason"},
)

// ActiveSessions tracks the number of live sessions seen by the last sweep.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of live sessions at the last inactivity sweep.",
	},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDenialsTotal counts requests rejected before reaching a handler.
// Label:
//   - reason: "unauthenticated" (no/invalid session), "expired" (idle timeout),
//     "forbidden" (wrong role), or "unavailable" (session store unreachable)
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by the auth middleware or role guard.",
	},
	[]string{"reason"},
)

// ── Recovery metrics ──────────────────────────────────────────────────────────

// RecoveryCodesTotal counts password-recovery code operations.
// Label:
//   - result: "issued", "verified", or "rejected"
var RecoveryCodesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_codes_total",
		Help:      "Total number of password-recovery code operations, by result.",
	},
	[]string{"result"},
)
