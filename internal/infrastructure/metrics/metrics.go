package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "storefront_bundles"
	subsystem = "bundle"
)

// Outcome labels shared by the counters below.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeStale    = "stale"
	OutcomeIssued   = "issued"
	OutcomeApplied  = "applied"
)

var (
	selectionOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "selection_operations_total",
			Help:      "Count of bundle selection operations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	priceRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "price_requests_total",
			Help:      "Count of bundle price requests by outcome (issued, applied, stale, failed).",
		},
		[]string{"outcome"},
	)
	catalogFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "catalog_fetches_total",
			Help:      "Count of bundle catalog loads by outcome (success, failed, stale).",
		},
		[]string{"outcome"},
	)
	catalogCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "catalog_cache_total",
			Help:      "Count of catalog cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_sessions",
			Help:      "Number of open bundle selection sessions.",
		},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		reg.MustRegister(selectionOperations)
		reg.MustRegister(priceRequests)
		reg.MustRegister(catalogFetches)
		reg.MustRegister(catalogCache)
		reg.MustRegister(activeSessions)
	})
}

func RecordSelectionOperation(operation, outcome string) {
	selectionOperations.WithLabelValues(operation, outcome).Inc()
}

func RecordPriceRequest(outcome string) {
	priceRequests.WithLabelValues(outcome).Inc()
}

func RecordCatalogFetch(outcome string) {
	catalogFetches.WithLabelValues(outcome).Inc()
}

func RecordCatalogCache(result string) {
	catalogCache.WithLabelValues(result).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
