package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the field store
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Store Metrics
	StoreOpsTotal      prometheus.CounterVec
	StorageWritesTotal prometheus.CounterVec
	RecordsTotal       prometheus.Gauge

	// Sync Metrics
	SyncAttemptsTotal prometheus.CounterVec
	SyncDuration      prometheus.Histogram

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldstore_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fieldstore_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Store Metrics
		StoreOpsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_store_ops_total",
				Help: "Total record store operations by type",
			},
			[]string{"op"},
		),
		StorageWritesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_storage_writes_total",
				Help: "Durable slot writes by result",
			},
			[]string{"result"},
		),
		RecordsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "fieldstore_records_total",
				Help: "Current number of records in the collection",
			},
		),

		// Sync Metrics
		SyncAttemptsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_sync_attempts_total",
				Help: "Sync attempts by outcome",
			},
			[]string{"result"},
		),
		SyncDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fieldstore_sync_duration_seconds",
				Help:    "Full-collection upload time in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldstore_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
	}
}
