// Package metrics defines the custom Prometheus metrics of the bug tracker.
// All metrics are registered with the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// ── Bug lifecycle ─────────────────────────────────────────────────────────────

// BugsReportedTotal counts accepted bug reports.
// Labels:
//   - priority: low, medium, high or critical
//   - replay: "true" when an Idempotency-Key returned an earlier report
var BugsReportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_reported_total",
		Help:      "Total number of bug reports accepted, by priority.",
	},
	[]string{"priority", "replay"},
)

// BugTransitionsTotal counts successful status transitions by target status.
var BugTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_transitions_total",
		Help:      "Total number of bug status transitions, by target status.",
	},
	[]string{"status"},
)

// BugsDeletedTotal counts deleted bugs.
var BugsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_deleted_total",
		Help:      "Total number of bugs deleted.",
	},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// LoginsTotal counts successful logins by role.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by role.",
	},
	[]string{"role"},
)

// ── Storage & refresh ─────────────────────────────────────────────────────────

// StorageErrorsTotal counts requests aborted by a storage failure.
// Label:
//   - kind: "unavailable" or "corrupt"
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of requests aborted by a storage failure.",
	},
	[]string{"kind"},
)

// DashboardRefreshesTotal counts poller refreshes.
// Labels:
//   - dashboard: admin or developer
//   - result: "ok" or "error"
var DashboardRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_refreshes_total",
		Help:      "Total number of dashboard snapshot refreshes.",
	},
	[]string{"dashboard", "result"},
)

// ObserveRefresh records one poller refresh attempt.
func ObserveRefresh(dashboard string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DashboardRefreshesTotal.WithLabelValues(dashboard, result).Inc()
}
