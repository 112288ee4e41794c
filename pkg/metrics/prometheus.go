// Package metrics provides Prometheus metrics for the benchboard service.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Leaderboard kinds used as the "board" label.
const (
	BoardAccuracy = "accuracy"
	BoardElo      = "elo"
	BoardWinrates = "winrates"
	BoardMarks    = "marks"
	BoardColumns  = "columns"
	BoardSnapshot = "snapshot"
)

var boards = map[string]struct{}{
	BoardAccuracy: {}, BoardElo: {}, BoardWinrates: {},
	BoardMarks: {}, BoardColumns: {}, BoardSnapshot: {},
}

// Manager owns the service's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	boardRows     *prometheus.GaugeVec

	eloMatches   prometheus.Counter
	winrateEdges prometheus.Gauge

	datasetRecords prometheus.Gauge
	datasetModels  prometheus.Gauge
	datasetLoads   prometheus.Counter
	skippedRows    *prometheus.CounterVec

	queueDepth    *prometheus.GaugeVec
	queueRejected *prometheus.CounterVec
	jobsTotal     *prometheus.CounterVec
	jobDuration   prometheus.Histogram

	cacheEntries prometheus.Gauge
	cacheHits    prometheus.Gauge
	cacheMisses  prometheus.Gauge

	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "benchboard",
		subsystem:        "leaderboard",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	counter := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
	}
	gauge := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
	}
	histogram := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
	}

	m.buildsTotal = auto.NewCounterVec(counter("builds_total", "Leaderboard builds by kind"), []string{"board"})
	m.buildDuration = auto.NewHistogramVec(histogram("build_duration_milliseconds", "Leaderboard build duration in milliseconds"), []string{"board"})
	m.boardRows = auto.NewGaugeVec(gauge("rows", "Rows produced by the last build of each kind"), []string{"board"})

	m.eloMatches = auto.NewCounter(counter("elo_matches_total", "Pairwise matches applied by the ELO engine"))
	m.winrateEdges = auto.NewGauge(gauge("winrate_edges", "Win-rate edges produced by the last computation"))

	m.datasetRecords = auto.NewGauge(gauge("dataset_records", "Performance records in the loaded dataset"))
	m.datasetModels = auto.NewGauge(gauge("dataset_models", "Model descriptors in the loaded dataset"))
	m.datasetLoads = auto.NewCounter(counter("dataset_loads_total", "Successful dataset loads"))
	m.skippedRows = auto.NewCounterVec(counter("dataset_skipped_rows_total", "Dataset rows rejected by validation"), []string{"section"})

	m.queueDepth = auto.NewGaugeVec(gauge("queue_depth", "Jobs waiting in a queue"), []string{"queue"})
	m.queueRejected = auto.NewCounterVec(counter("queue_rejected_total", "Jobs a queue refused"), []string{"queue", "reason"})
	m.jobsTotal = auto.NewCounterVec(counter("jobs_total", "Background jobs by outcome"), []string{"status"})
	m.jobDuration = auto.NewHistogram(histogram("job_duration_milliseconds", "Background job duration in milliseconds"))

	m.cacheEntries = auto.NewGauge(gauge("cache_entries", "Snapshots held in the cache"))
	m.cacheHits = auto.NewGauge(gauge("cache_hits", "Snapshot cache hits since start"))
	m.cacheMisses = auto.NewGauge(gauge("cache_misses", "Snapshot cache misses since start"))

	m.systemMemoryUsage = auto.NewGauge(gauge("system_memory_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(gauge("system_goroutines", "Live goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(histogram("system_gc_pause_milliseconds", "Average GC pause in milliseconds"))

	m.httpRequests = auto.NewCounterVec(counter("http_requests_total", "HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(counter("errors_by_component_total", "Errors by component and type"), []string{"component", "error_type"})
}

// RecordBuild records one leaderboard build of the given kind.
func (m *Manager) RecordBuild(board string, rows int, took time.Duration) error {
	if _, ok := boards[board]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}
	if !m.enabled {
		return nil
	}
	m.buildsTotal.WithLabelValues(board).Inc()
	m.buildDuration.WithLabelValues(board).Observe(float64(took.Microseconds()) / 1000)
	m.boardRows.WithLabelValues(board).Set(float64(rows))
	return nil
}

// RecordEloMatches adds n applied matches.
func (m *Manager) RecordEloMatches(n int) {
	if m.enabled && n > 0 {
		m.eloMatches.Add(float64(n))
	}
}

// SetWinrateEdges sets the edge count of the last computation.
func (m *Manager) SetWinrateEdges(n int) {
	if m.enabled {
		m.winrateEdges.Set(float64(n))
	}
}

// RecordDatasetLoad records a successful load and its size.
func (m *Manager) RecordDatasetLoad(records, models int) {
	if !m.enabled {
		return
	}
	m.datasetLoads.Inc()
	m.datasetRecords.Set(float64(records))
	m.datasetModels.Set(float64(models))
}

// RecordSkippedRows adds n rejected rows of a dataset section.
func (m *Manager) RecordSkippedRows(section string, n int) {
	if m.enabled && n > 0 {
		m.skippedRows.WithLabelValues(section).Add(float64(n))
	}
}

// UpdateQueueDepth sets the number of jobs waiting in the named queue.
func (m *Manager) UpdateQueueDepth(queue string, n int) {
	if m.enabled {
		m.queueDepth.WithLabelValues(queue).Set(float64(n))
	}
}

// RecordQueueRejected counts a job the named queue refused.
func (m *Manager) RecordQueueRejected(queue, reason string) {
	if m.enabled {
		m.queueRejected.WithLabelValues(queue, reason).Inc()
	}
}

// RecordJob records one background job outcome.
func (m *Manager) RecordJob(status string, took time.Duration) {
	if !m.enabled {
		return
	}
	m.jobsTotal.WithLabelValues(status).Inc()
	m.jobDuration.Observe(float64(took.Microseconds()) / 1000)
}

// UpdateCacheStats publishes the snapshot cache size and counters.
func (m *Manager) UpdateCacheStats(entries int, hits, misses int64) {
	if !m.enabled {
		return
	}
	m.cacheEntries.Set(float64(entries))
	m.cacheHits.Set(float64(hits))
	m.cacheMisses.Set(float64(misses))
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(n int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(n))
	}
}

// RecordSystemGCPauseTime observes an average GC pause.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(ms)
	}
}

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error with component and type labels.
func (m *Manager) RecordError(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// Global returns the process-wide manager bound to GetRegistry.
func Global() *Manager { return globalManager }

// RecordBuild records a build on the global manager.
func RecordBuild(board string, rows int, took time.Duration) error {
	return globalManager.RecordBuild(board, rows, took)
}

// RecordEloMatches records applied matches on the global manager.
func RecordEloMatches(n int) { globalManager.RecordEloMatches(n) }

// SetWinrateEdges sets the edge gauge on the global manager.
func SetWinrateEdges(n int) { globalManager.SetWinrateEdges(n) }

// RecordDatasetLoad records a dataset load on the global manager.
func RecordDatasetLoad(records, models int) { globalManager.RecordDatasetLoad(records, models) }

// RecordSkippedRows records rejected rows on the global manager.
func RecordSkippedRows(section string, n int) { globalManager.RecordSkippedRows(section, n) }

// UpdateQueueDepth sets a queue depth on the global manager.
func UpdateQueueDepth(queue string, n int) { globalManager.UpdateQueueDepth(queue, n) }

// RecordQueueRejected records a refused job on the global manager.
func RecordQueueRejected(queue, reason string) { globalManager.RecordQueueRejected(queue, reason) }

// RecordJob records a job outcome on the global manager.
func RecordJob(status string, took time.Duration) { globalManager.RecordJob(status, took) }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// UpdateCacheStats publishes cache stats on the global manager.
func UpdateCacheStats(entries int, hits, misses int64) {
	globalManager.UpdateCacheStats(entries, hits, misses)
}

// UpdateSystemMemoryUsage sets the heap size on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine count on the global manager.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime observes a GC pause on the global manager.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

// RecordErrorByComponent records an error on the global manager.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordError(component, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
