package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "my_espace",
		Name:      "gate_decisions_total",
		Help:      "Auth gate evaluations by gate and outcome.",
	}, []string{"gate", "outcome"})

	SessionCorruptions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "my_espace",
		Name:      "session_corrupt_total",
		Help:      "Stored sessions discarded because they could not be decoded.",
	})

	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "my_espace",
		Name:      "backend_fetch_failures_total",
		Help:      "Backend DTO fetches that failed and degraded to an empty view.",
	}, []string{"resource"})

	PurgedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "my_espace",
		Name:      "sessions_purged_total",
		Help:      "Expired session entries removed by the purge job.",
	})
)
