// Package metrics provides Prometheus metrics for the predator catalog
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the catalog
type Metrics struct {
	// Catalog operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ViewSize          *prometheus.GaugeVec
	SearchResults     prometheus.Histogram

	// Dataset metrics
	DatasetLoadsTotal *prometheus.CounterVec
	RecordsTotal      prometheus.Gauge
	RecordsByCategory *prometheus.GaugeVec
	DatasetAvailable  prometheus.Gauge
}

// NewMetrics creates and registers all metrics with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{}

	m.OperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predators_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation", "status"},
	)

	m.OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "predators_catalog_operation_duration_seconds",
			Help:    "Duration of catalog operations in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"operation"},
	)

	m.ViewSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "predators_catalog_view_records",
			Help: "Number of records produced by the last operation",
		},
		[]string{"operation"},
	)

	m.SearchResults = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "predators_catalog_search_results",
			Help:    "Number of records matched per search",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	m.DatasetLoadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predators_dataset_loads_total",
			Help: "Total number of dataset loads by outcome",
		},
		[]string{"status"},
	)

	m.RecordsTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "predators_dataset_records",
			Help: "Number of records in the full set",
		},
	)

	m.RecordsByCategory = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "predators_dataset_records_by_category",
			Help: "Number of records in the full set per category",
		},
		[]string{"category"},
	)

	m.DatasetAvailable = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "predators_dataset_available",
			Help: "1 when the dataset loaded successfully, 0 otherwise",
		},
	)

	return m
}

// RecordOperation records a catalog operation and the size of its result
func (m *Metrics) RecordOperation(operation string, status string, duration time.Duration, results int) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.ViewSize.WithLabelValues(operation).Set(float64(results))
	if operation == "search" {
		m.SearchResults.Observe(float64(results))
	}
}

// RecordLoad records the dataset load outcome and per-category sizes
func (m *Metrics) RecordLoad(err error, total int, byCategory map[string]int) {
	if err != nil {
		m.DatasetLoadsTotal.WithLabelValues("error").Inc()
		m.DatasetAvailable.Set(0)
		m.RecordsTotal.Set(0)
		return
	}

	m.DatasetLoadsTotal.WithLabelValues("success").Inc()
	m.DatasetAvailable.Set(1)
	m.RecordsTotal.Set(float64(total))
	for c, n := range byCategory {
		m.RecordsByCategory.WithLabelValues(c).Set(float64(n))
	}
}
