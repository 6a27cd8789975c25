// Package metrics provides Prometheus metrics for the leaderboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Source metrics - fetch and cache behavior
	fetchTotal    prometheus.Counter
	fetchErrors   prometheus.Counter
	fetchDuration prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	rowsFetched   prometheus.Gauge

	// Pipeline metrics - refresh cycles and data quality
	refreshCycles    prometheus.Counter
	refreshErrors    prometheus.Counter
	refreshDuration  prometheus.Histogram
	schemaMismatches prometheus.Counter
	rowsDropped      prometheus.Counter
	boardRenders     *prometheus.CounterVec

	// Board state metrics
	totalEntries    prometheus.Gauge
	totalPages      prometheus.Gauge
	currentPage     prometheus.Gauge
	lastRefreshUnix prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "nasea",
		subsystem: "leaderboard",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.fetchTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_total",
		Help:      "Total number of CSV fetch attempts",
	})
	m.fetchErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed CSV fetches",
	})
	m.fetchDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_ms",
		Help:      "CSV fetch duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Fetches served from the TTL cache",
	})
	m.cacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Fetches that went to the upstream source",
	})
	m.rowsFetched = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_fetched",
		Help:      "Number of raw rows in the last fetched table",
	})

	m.refreshCycles = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total number of pipeline refresh cycles",
	})
	m.refreshErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_errors_total",
		Help:      "Refresh cycles that ended in an error state",
	})
	m.refreshDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_ms",
		Help:      "Full pipeline refresh duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})
	m.schemaMismatches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schema_mismatches_total",
		Help:      "Refresh cycles that failed column resolution",
	})
	m.rowsDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Raw rows dropped by validation",
	})
	m.boardRenders = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_renders_total",
		Help:      "Board renders by state (board, empty, error)",
	}, []string{"state"})

	m.totalEntries = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_entries",
		Help:      "Number of valid ranked entries on the board",
	})
	m.totalPages = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_pages",
		Help:      "Number of pages in the rotation",
	})
	m.currentPage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_page",
		Help:      "Zero-based page index currently displayed",
	})
	m.lastRefreshUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_refresh_unix",
		Help:      "Unix timestamp of the last successful refresh",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})
}

// Source metrics.

func RecordFetch() { globalManager.fetchTotal.Inc() }
func RecordFetchError() { globalManager.fetchErrors.Inc() }
func RecordFetchDuration(ms float64) { globalManager.fetchDuration.Observe(ms) }
func RecordCacheHit() { globalManager.cacheHits.Inc() }
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }
func UpdateRowsFetched(n int) { globalManager.rowsFetched.Set(float64(n)) }

// Pipeline metrics.

func RecordRefreshCycle() { globalManager.refreshCycles.Inc() }
func RecordRefreshError() { globalManager.refreshErrors.Inc() }
func RecordRefreshDuration(ms float64) { globalManager.refreshDuration.Observe(ms) }
func RecordSchemaMismatch() { globalManager.schemaMismatches.Inc() }
func RecordRowsDropped(n int) { globalManager.rowsDropped.Add(float64(n)) }

// RecordBoardRender counts a render by state: "board", "empty" or "error".
func RecordBoardRender(state string) {
	globalManager.boardRenders.WithLabelValues(state).Inc()
}

// Board state metrics.

func UpdateTotalEntries(n int) { globalManager.totalEntries.Set(float64(n)) }
func UpdateTotalPages(n int) { globalManager.totalPages.Set(float64(n)) }
func UpdateCurrentPage(p int) { globalManager.currentPage.Set(float64(p)) }
func UpdateLastRefreshUnix(ts int64) { globalManager.lastRefreshUnix.Set(float64(ts)) }

// HTTP metrics.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// System metrics.

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry for serving metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
