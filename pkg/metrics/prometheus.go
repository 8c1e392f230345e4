// Package metrics provides Prometheus metrics for the maturity assessment service.
package metrics

import (
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Framework shape
	frameworkDimensions prometheus.Gauge
	frameworkElements   prometheus.Gauge
	frameworkMutations  *prometheus.CounterVec

	// Assessments
	assessmentsRecorded prometheus.Counter
	assessmentsTotal    prometheus.Gauge
	lastOverallScore    prometheus.Gauge
	scoringLatency      prometheus.Histogram

	// Suggestions
	suggestionRequests *prometheus.CounterVec
	suggestionFailures prometheus.Counter
	suggestionLatency  prometheus.Histogram

	// Persistence
	storeOperations *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps the default Go collectors out of /metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure rebuilds the global manager on a fresh registry so collectors
// can be renamed without duplicate registration. It is not safe to call
// while metrics are being recorded; call it once at startup before serving.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(slices.Clone(opts), WithRegistry(customRegistry))...)
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "maturity",
		subsystem:        "framework",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval reports how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// RefreshInterval reports the global manager's gauge refresh interval.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }

// Enabled reports whether collection is on.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.frameworkDimensions = auto.NewGauge(m.gaugeOpts(
		"dimensions", "Current number of dimensions in the framework"))
	m.frameworkElements = auto.NewGauge(m.gaugeOpts(
		"elements", "Current number of elements across all dimensions"))
	m.frameworkMutations = auto.NewCounterVec(m.counterOpts(
		"mutations_total", "Framework mutations by operation"),
		[]string{"operation"})

	m.assessmentsRecorded = auto.NewCounter(m.counterOpts(
		"assessments_recorded_total", "Total number of assessments recorded since start"))
	m.assessmentsTotal = auto.NewGauge(m.gaugeOpts(
		"assessments", "Number of assessments in the history"))
	m.lastOverallScore = auto.NewGauge(m.gaugeOpts(
		"last_overall_score", "Overall score of the most recent assessment"))
	m.scoringLatency = auto.NewHistogram(m.histogramOpts(
		"scoring_latency_milliseconds", "Time spent computing an assessment in milliseconds", m.histogramBuckets))

	m.suggestionRequests = auto.NewCounterVec(m.counterOpts(
		"suggestion_requests_total", "Element suggestion requests by provider"),
		[]string{"provider"})
	m.suggestionFailures = auto.NewCounter(m.counterOpts(
		"suggestion_failures_total", "Element suggestion requests that failed"))
	m.suggestionLatency = auto.NewHistogram(m.histogramOpts(
		"suggestion_latency_milliseconds", "Suggestion provider latency in milliseconds",
		prometheus.ExponentialBuckets(10, 2, 12)))

	m.storeOperations = auto.NewCounterVec(m.counterOpts(
		"store_operations_total", "Persistence operations by backend, operation and outcome"),
		[]string{"backend", "operation", "outcome"})
	m.storeLatency = auto.NewHistogramVec(m.histogramOpts(
		"store_latency_milliseconds", "Persistence latency in milliseconds", m.histogramBuckets),
		[]string{"backend", "operation"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total", "Errors by component and error type"),
		[]string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Errors by HTTP endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Current number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_milliseconds", "Most recent GC pause in milliseconds", m.histogramBuckets))
}

// Framework metrics.

// UpdateFrameworkSize sets the dimension and element gauges.
func UpdateFrameworkSize(dimensions, elements int) {
	if !globalManager.enabled {
		return
	}
	globalManager.frameworkDimensions.Set(float64(dimensions))
	globalManager.frameworkElements.Set(float64(elements))
}

// RecordFrameworkMutation counts a framework change such as "add_dimension".
func RecordFrameworkMutation(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.frameworkMutations.WithLabelValues(operation).Inc()
}

// Assessment metrics.

// RecordAssessment counts a newly recorded assessment and tracks its score.
func RecordAssessment(overallScore float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.assessmentsRecorded.Inc()
	globalManager.lastOverallScore.Set(overallScore)
}

// UpdateAssessmentsTotal sets the history size gauge.
func UpdateAssessmentsTotal(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.assessmentsTotal.Set(float64(count))
}

// UpdateLastOverallScore sets the most recent overall score.
func UpdateLastOverallScore(score float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.lastOverallScore.Set(score)
}

// RecordScoringLatency records the time spent computing an assessment.
func RecordScoringLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.scoringLatency.Observe(latencyMs)
}

// Suggestion metrics.

// RecordSuggestionRequest counts a suggestion request against a provider.
func RecordSuggestionRequest(provider string) {
	if !globalManager.enabled {
		return
	}
	globalManager.suggestionRequests.WithLabelValues(provider).Inc()
}

// RecordSuggestionFailure counts a failed suggestion request.
func RecordSuggestionFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.suggestionFailures.Inc()
}

// RecordSuggestionLatency records provider round-trip time.
func RecordSuggestionLatency(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.suggestionLatency.Observe(latencyMs)
}

// Persistence metrics.

// RecordStoreOperation counts a persistence call. Outcome is "ok", "not_found" or "error".
func RecordStoreOperation(backend, operation, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeOperations.WithLabelValues(backend, operation, outcome).Inc()
}

// RecordStoreLatency records persistence latency.
func RecordStoreLatency(backend, operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeLatency.WithLabelValues(backend, operation).Observe(latencyMs)
}

// HTTP metrics.

// RecordHTTPRequest increments the request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
