// Package metrics provides Prometheus metrics for the pitchside squad service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Analytics
	analyticsRuns    *prometheus.CounterVec
	analyticsLatency *prometheus.HistogramVec

	// Squad document
	records          *prometheus.GaugeVec
	mutations        *prometheus.CounterVec
	validationErrors prometheus.Counter
	documentBytes    prometheus.Gauge

	// Store
	storeOperations *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	backups         *prometheus.CounterVec
	lastBackupUnix  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// MCP
	toolCalls *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchside",
		subsystem:        "squad",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.analyticsRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analytics_runs_total",
		Help:        "Analytics computations by operation",
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.analyticsLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analytics_latency_milliseconds",
		Help:        "Analytics computation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.records = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records",
		Help:        "Records in the squad document by collection",
		ConstLabels: m.constLabels,
	}, []string{"collection"})

	m.mutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mutations_total",
		Help:        "Applied document mutations by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.validationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validation_errors_total",
		Help:        "Rejected records that failed validation",
		ConstLabels: m.constLabels,
	})

	m.documentBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "document_bytes",
		Help:        "Size of the last persisted squad document",
		ConstLabels: m.constLabels,
	})

	m.storeOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_operations_total",
		Help:        "Document store operations by operation and result",
		ConstLabels: m.constLabels,
	}, []string{"operation", "result"})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_latency_milliseconds",
		Help:        "Document store latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.backups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "backups_total",
		Help:        "Document backups by result",
		ConstLabels: m.constLabels,
	}, []string{"result"})

	m.lastBackupUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_backup_unix",
		Help:        "Unix time of the last successful backup",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.toolCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mcp_tool_calls_total",
		Help:        "MCP tool invocations by tool and result",
		ConstLabels: m.constLabels,
	}, []string{"tool", "result"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// RecordAnalytics records one analytics computation.
func RecordAnalytics(operation string, d time.Duration) {
	globalManager.analyticsRuns.WithLabelValues(operation).Inc()
	globalManager.analyticsLatency.WithLabelValues(operation).Observe(ms(d))
}

// UpdateRecordCounts sets the document collection sizes.
func UpdateRecordCounts(players, matches, trainings int) {
	globalManager.records.WithLabelValues("players").Set(float64(players))
	globalManager.records.WithLabelValues("matches").Set(float64(matches))
	globalManager.records.WithLabelValues("trainings").Set(float64(trainings))
}

// RecordMutation increments the mutation counter for kind.
func RecordMutation(kind string) {
	globalManager.mutations.WithLabelValues(kind).Inc()
}

// RecordValidationError increments the rejected record counter.
func RecordValidationError() {
	globalManager.validationErrors.Inc()
}

// UpdateDocumentBytes sets the persisted document size.
func UpdateDocumentBytes(n int) {
	globalManager.documentBytes.Set(float64(n))
}

// RecordStoreOperation records a load, save or backup against the store.
func RecordStoreOperation(operation string, d time.Duration, err error) {
	globalManager.storeOperations.WithLabelValues(operation, result(err)).Inc()
	globalManager.storeLatency.WithLabelValues(operation).Observe(ms(d))
}

// RecordBackup records a backup attempt; successes also stamp the time.
func RecordBackup(at time.Time, err error) {
	globalManager.backups.WithLabelValues(result(err)).Inc()
	if err == nil {
		globalManager.lastBackupUnix.Set(float64(at.Unix()))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordToolCall records an MCP tool invocation.
func RecordToolCall(tool string, err error) {
	globalManager.toolCalls.WithLabelValues(tool, result(err)).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
