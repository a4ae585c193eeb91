// Package metrics provides Prometheus metrics for the podium watcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the watcher.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Cycle metrics - one increment per completed poll cycle
	cyclesTotal   prometheus.Counter
	cycleDuration prometheus.Histogram
	lastCycleUnix prometheus.Gauge

	// Feed metrics - fetch outcomes and extraction volume
	fetchFailures   prometheus.Counter
	fetchDuration   prometheus.Histogram
	malformedFeeds  prometheus.Counter
	awardsExtracted prometheus.Counter

	// Leaderboard metrics - aggregation and change detection
	entrantsTracked prometheus.Gauge
	snapshotSize    prometheus.Gauge
	snapshotChanges prometheus.Counter

	// Reporter metrics - emission outcomes
	reportFailures prometheus.Counter
	reportDuration prometheus.Histogram

	// HTTP metrics - status surface requests
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "watcher",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.cyclesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycles_total",
		Help:      "Total number of completed poll cycles",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cycle_duration_milliseconds",
		Help:      "Histogram of full cycle duration in milliseconds (fetch through compare)",
		Buckets:   m.histogramBuckets,
	})

	m.lastCycleUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_cycle_unix",
		Help:      "Unix timestamp of the most recently completed cycle",
	})

	m.fetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_failures_total",
		Help:      "Total number of feed fetches that failed and abandoned their cycle",
	})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Histogram of feed fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.malformedFeeds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_feeds_total",
		Help:      "Total number of fetches rejected because an award record was malformed",
	})

	m.awardsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "awards_extracted_total",
		Help:      "Total number of award records extracted across all cycles",
	})

	m.entrantsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entrants_tracked",
		Help:      "Number of entrants in the most recent full ranking",
	})

	m.snapshotSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_size",
		Help:      "Number of entrants in the most recent top-N snapshot",
	})

	m.snapshotChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_changes_total",
		Help:      "Total number of cycles whose snapshot differed from the previous one",
	})

	m.reportFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_failures_total",
		Help:      "Total number of snapshot emissions that failed",
	})

	m.reportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_duration_milliseconds",
		Help:      "Histogram of snapshot emission duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordCycle increments the completed cycle counter.
func RecordCycle() {
	globalManager.cyclesTotal.Inc()
}

// RecordCycleDuration records full cycle duration in milliseconds.
func RecordCycleDuration(latencyMs float64) {
	globalManager.cycleDuration.Observe(latencyMs)
}

// UpdateLastCycleUnix sets the timestamp of the most recent cycle.
func UpdateLastCycleUnix(ts float64) {
	globalManager.lastCycleUnix.Set(ts)
}

// RecordFetchFailure increments the failed fetch counter.
func RecordFetchFailure() {
	globalManager.fetchFailures.Inc()
}

// RecordFetchDuration records feed fetch duration in milliseconds.
func RecordFetchDuration(latencyMs float64) {
	globalManager.fetchDuration.Observe(latencyMs)
}

// RecordMalformedFeed increments the malformed feed counter.
func RecordMalformedFeed() {
	globalManager.malformedFeeds.Inc()
}

// AddAwardsExtracted adds a cycle's extracted award count to the total.
func AddAwardsExtracted(n int) {
	globalManager.awardsExtracted.Add(float64(n))
}

// UpdateEntrantsTracked sets the entrant count from the latest full ranking.
func UpdateEntrantsTracked(n int) {
	globalManager.entrantsTracked.Set(float64(n))
}

// UpdateSnapshotSize sets the size of the latest top-N snapshot.
func UpdateSnapshotSize(n int) {
	globalManager.snapshotSize.Set(float64(n))
}

// RecordSnapshotChange increments the changed-snapshot counter.
func RecordSnapshotChange() {
	globalManager.snapshotChanges.Inc()
}

// RecordReportFailure increments the failed emission counter.
func RecordReportFailure() {
	globalManager.reportFailures.Inc()
}

// RecordReportDuration records emission duration in milliseconds.
func RecordReportDuration(latencyMs float64) {
	globalManager.reportDuration.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request against the status surface.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Registry returns the custom Prometheus registry used by our metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}
