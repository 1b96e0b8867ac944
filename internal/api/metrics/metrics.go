// Package metrics defines and registers all custom Prometheus metrics for
// the identity API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed out (register + login).
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued.",
	},
)

// AccountsCreatedTotal counts created accounts by role.
// Label:
//   - role: "User" or "Admin" ("SuperAdmin" only via the startup seed)
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by assigned role.",
	},
	[]string{"role"},
)

// AdminOpsTotal counts account-management operations by outcome.
// Labels:
//   - op: "list", "list_all", "get", "create", "update", "delete"
//   - outcome: "ok", "forbidden", "not_found", "invalid", "conflict", "error"
var AdminOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_ops_total",
		Help:      "Total number of admin account operations, by op and outcome.",
	},
	[]string{"op", "outcome"},
)
