// Package metrics provides Prometheus metrics for the rosterlab pipeline.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every pipeline metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Fetch metrics
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	cacheWriteErrors  prometheus.Counter
	upstreamRequests  *prometheus.CounterVec
	upstreamLatency   *prometheus.HistogramVec
	skippedIdentifier prometheus.Counter

	// Data quality metrics
	stageRows         *prometheus.GaugeVec
	namesMatched      prometheus.Counter
	namesUnmatched    prometheus.Counter
	duplicatesDropped *prometheus.CounterVec
	stageErrors       *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Metrics are registered on the
// configured registry (prometheus.DefaultRegisterer unless overridden).
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rosterlab",
		subsystem:        "pipeline",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "attribute_cache_hits_total",
		Help:      "Attribute lookups served from the persistent cache",
	})
	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "attribute_cache_misses_total",
		Help:      "Attribute lookups that required an upstream request",
	})
	m.cacheWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "attribute_cache_write_errors_total",
		Help:      "Failed writes to the attribute cache",
	})
	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_requests_total",
		Help:      "Catalog API requests by endpoint and status code",
	}, []string{"endpoint", "status_code"})
	m.upstreamLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_latency_milliseconds",
		Help:      "Catalog API request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})
	m.skippedIdentifier = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "skipped_identifiers_total",
		Help:      "Identifiers skipped by the batch attribute fetch",
	})

	m.stageRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_rows",
		Help:      "Rows produced by the last run of each stage",
	}, []string{"stage"})
	m.namesMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "external_names_matched_total",
		Help:      "Main-table rows matched to external statistics by normalized name",
	})
	m.namesUnmatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "external_names_unmatched_total",
		Help:      "Main-table rows without external statistics",
	})
	m.duplicatesDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_dropped_total",
		Help:      "Rows dropped by first-seen deduplication, by stage",
	}, []string{"stage"})
	m.stageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_errors_total",
		Help:      "Pipeline failures by stage",
	}, []string{"stage"})
}

// RecordCacheHit increments the attribute cache hit counter.
func RecordCacheHit() {
	if globalManager.enabled {
		globalManager.cacheHits.Inc()
	}
}

// RecordCacheMiss increments the attribute cache miss counter.
func RecordCacheMiss() {
	if globalManager.enabled {
		globalManager.cacheMisses.Inc()
	}
}

// RecordCacheWriteError increments the cache write failure counter.
func RecordCacheWriteError() {
	if globalManager.enabled {
		globalManager.cacheWriteErrors.Inc()
	}
}

// RecordUpstreamRequest records one catalog request. A zero status means the
// request failed before a response arrived.
func RecordUpstreamRequest(endpoint string, statusCode int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	globalManager.upstreamLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordSkippedIdentifier increments the batch-skip counter.
func RecordSkippedIdentifier() {
	if globalManager.enabled {
		globalManager.skippedIdentifier.Inc()
	}
}

// UpdateStageRows sets the row count produced by stage.
func UpdateStageRows(stage string, rows int) {
	if globalManager.enabled {
		globalManager.stageRows.WithLabelValues(stage).Set(float64(rows))
	}
}

// RecordNameMatches adds the matched and unmatched counts of an attach.
func RecordNameMatches(matched, unmatched int) {
	if !globalManager.enabled {
		return
	}
	globalManager.namesMatched.Add(float64(matched))
	globalManager.namesUnmatched.Add(float64(unmatched))
}

// RecordDuplicatesDropped adds n deduplicated rows for stage.
func RecordDuplicatesDropped(stage string, n int) {
	if globalManager.enabled && n > 0 {
		globalManager.duplicatesDropped.WithLabelValues(stage).Add(float64(n))
	}
}

// RecordStageError increments the failure counter for stage.
func RecordStageError(stage string) {
	if globalManager.enabled {
		globalManager.stageErrors.WithLabelValues(stage).Inc()
	}
}

// GetRegistry returns the registry backing the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry to path in the text exposition
// format, suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
