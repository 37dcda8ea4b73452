// Package metrics holds the Prometheus collectors for the review store.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the collectors recorded around store operations.
type Metrics struct {
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec
	RankingCacheTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "yelp",
				Name:      "store_operations_total",
				Help:      "Total number of store operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		StoreOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "yelp",
				Name:      "store_operation_duration_seconds",
				Help:      "Duration of store operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RankingCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "yelp",
				Name:      "ranking_cache_total",
				Help:      "Ranking cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.StoreOperationsTotal, m.StoreOperationDuration, m.RankingCacheTotal)
	}

	return m
}

// ObserveStoreOperation records one store call.
func (m *Metrics) ObserveStoreOperation(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	m.StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveCacheLookup records a ranking cache hit, miss or error.
func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.RankingCacheTotal.WithLabelValues(result).Inc()
}
