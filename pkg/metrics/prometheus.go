package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all prometheus metrics for the record store. Each
// instance carries its own registry so independent stores (and tests)
// never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	RecordsCreated *prometheus.CounterVec
	RecordsDeleted *prometheus.CounterVec
	SavesTotal     prometheus.Counter
	SaveFailures   prometheus.Counter
	SearchesTotal  prometheus.Counter
	SaveDuration   prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "The total number of records created, by kind",
		}, []string{"kind"}),
		RecordsDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_deleted_total",
			Help:      "The total number of records deleted, by kind",
		}, []string{"kind"}),
		SavesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "The total number of backing file rewrites attempted",
		}),
		SaveFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "The total number of backing file rewrites that failed",
		}),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of search queries served",
		}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Time taken to rewrite the backing file",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Gather collects the current metric families from this instance's
// registry.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
