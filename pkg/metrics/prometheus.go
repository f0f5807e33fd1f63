// Package metrics provides Prometheus metrics for the scorewatch
// monitoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scorewatch service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Poll loop metrics
	ticksTotal   *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	pollInterval prometheus.Gauge
	liveEvents   prometheus.Gauge

	// Subscription metrics
	subscriptionsTotal  *prometheus.CounterVec
	promotionsTotal     prometheus.Counter
	subscribersLive     prometheus.Gauge
	subscribersPending  prometheus.Gauge
	registryWriteMs     prometheus.Histogram
	registryWriteErrors prometheus.Counter

	// Notification metrics
	notificationsSent     prometheus.Counter
	notificationsFailed   prometheus.Counter
	dispatchQueueSize     prometheus.Gauge
	dispatchQueueCapacity prometheus.Gauge
	dispatchEnqueueErrors prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "scorewatch",
		subsystem:        "monitor",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.ticksTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ticks_total",
			Help:      "Total poll ticks by result (ok, fetch_error, extract_error)",
		},
		[]string{"result"},
	)

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Histogram of feed fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pollInterval = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_interval_seconds",
		Help:      "Interval chosen after the last tick",
	})

	m.liveEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_events",
		Help:      "Number of events in the current snapshot",
	})

	m.subscriptionsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "subscriptions_total",
			Help:      "Total effective subscribe operations by section",
		},
		[]string{"section"},
	)

	m.promotionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "promotions_total",
		Help:      "Total pending subscriptions promoted to the live section",
	})

	m.subscribersLive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subscribers_live",
		Help:      "Current number of live-section subscriptions",
	})

	m.subscribersPending = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subscribers_pending",
		Help:      "Current number of pending-section subscriptions",
	})

	m.registryWriteMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registry_write_latency_milliseconds",
		Help:      "Registry persistence latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.registryWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registry_write_errors_total",
		Help:      "Total failed registry persistence attempts",
	})

	m.notificationsSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_sent_total",
		Help:      "Total outbound notifications delivered",
	})

	m.notificationsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_failed_total",
		Help:      "Total outbound notifications that failed delivery",
	})

	m.dispatchQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_queue_size",
		Help:      "Current size of the outbound dispatch queue",
	})

	m.dispatchQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_queue_capacity",
		Help:      "Configured capacity of the outbound dispatch queue",
	})

	m.dispatchEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dispatch_enqueue_errors_total",
		Help:      "Total outbound messages rejected by the dispatch queue",
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

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the custom Prometheus registry for serving.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordTick counts one poll tick with its result label.
func RecordTick(result string) {
	globalManager.ticksTotal.WithLabelValues(result).Inc()
}

// RecordFetchLatency records one feed fetch duration in milliseconds.
func RecordFetchLatency(ms float64) {
	globalManager.fetchLatency.Observe(ms)
}

// UpdatePollInterval publishes the interval picked after the last tick.
func UpdatePollInterval(seconds float64) {
	globalManager.pollInterval.Set(seconds)
}

// UpdateLiveEvents publishes the size of the current snapshot.
func UpdateLiveEvents(n int) {
	globalManager.liveEvents.Set(float64(n))
}

// RecordSubscription counts one effective subscribe per section.
func RecordSubscription(section string) {
	globalManager.subscriptionsTotal.WithLabelValues(section).Inc()
}

// RecordPromotion counts newly promoted subscriptions.
func RecordPromotion(n int) {
	globalManager.promotionsTotal.Add(float64(n))
}

// UpdateSubscriberCounts publishes the per-section subscription totals.
func UpdateSubscriberCounts(live, pending int) {
	globalManager.subscribersLive.Set(float64(live))
	globalManager.subscribersPending.Set(float64(pending))
}

// RecordRegistryWrite records one registry persistence attempt.
func RecordRegistryWrite(ms float64, ok bool) {
	globalManager.registryWriteMs.Observe(ms)
	if !ok {
		globalManager.registryWriteErrors.Inc()
	}
}

// RecordNotificationSent counts one delivered notification.
func RecordNotificationSent() {
	globalManager.notificationsSent.Inc()
}

// RecordNotificationFailure counts one failed delivery.
func RecordNotificationFailure() {
	globalManager.notificationsFailed.Inc()
}

// UpdateDispatchQueue publishes dispatch queue size and capacity.
func UpdateDispatchQueue(size, capacity int) {
	globalManager.dispatchQueueSize.Set(float64(size))
	globalManager.dispatchQueueCapacity.Set(float64(capacity))
}

// RecordDispatchEnqueueError counts one rejected outbound message.
func RecordDispatchEnqueueError() {
	globalManager.dispatchEnqueueErrors.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage publishes the current heap allocation.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount publishes the current goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}
