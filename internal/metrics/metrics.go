// Package metrics holds every Prometheus collector of the dashboard and the
// reference backend. Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "savings"

// Mutation results.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultNoSession = "no_session"
	ResultInvalid   = "invalid"
)

// ChildLoadFailuresTotal counts children dropped from the initial load because
// their detail fetch failed.
var ChildLoadFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "child_load_failures_total",
		Help:      "Children omitted from the dashboard because their detail could not be loaded.",
	},
)

// MutationsTotal counts dashboard mutations.
// Labels:
//   - operation: e.g. "add_contribution"
//   - result: success, failure, no_session or invalid
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "mutations_total",
		Help:      "Dashboard mutations by operation and result.",
	},
	[]string{"operation", "result"},
)

// BackendRequestDuration is the latency of calls made by the backend client.
// route is the path template (e.g. "/api/children/{id}"), never the raw path.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Duration of requests from the dashboard to the savings backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// APIRequestsTotal counts requests served by the reference backend.
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Requests served by the savings API by route and status.",
	},
	[]string{"method", "route", "status"},
)

// SimulationGoalsProcessedTotal counts goals that received an automatic
// monthly contribution.
var SimulationGoalsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "simulation",
		Name:      "goals_processed_total",
		Help:      "Goals credited by the monthly simulation.",
	},
)
