// Package metrics defines and registers the custom Prometheus metrics for the
// user management API. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userapi"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected before reaching a handler.
// Label:
//   - reason: "unauthenticated" (missing/invalid/expired token) or "forbidden"
//     (valid token, insufficient role)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the auth or role gate.",
	},
	[]string{"reason"},
)

// UserOperationsTotal counts successful management operations.
// Label:
//   - action: "create", "update", "delete", or "list"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of completed user management operations, by action.",
	},
	[]string{"action"},
)

// LoginThrottledTotal counts logins rejected by the rate limiter.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// AuditQueueDepth tracks pending audit entries per dispatcher worker.
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
