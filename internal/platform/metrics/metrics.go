package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "class_fund"

// Metrics holds the application's Prometheus collectors on a dedicated registry.
type Metrics struct {
	Registry *prometheus.Registry

	storeOperations *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	boxes           prometheus.Gauge
	pendingSaves    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		storeOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "store_operations_total",
				Help:      "Total number of box store loads and saves.",
			},
			[]string{"operation", "status"},
		),
		storeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "store_operation_duration_seconds",
				Help:      "Duration of box store loads and saves.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"operation"},
		),
		boxes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "boxes",
				Help:      "Number of boxes in the in-memory collection.",
			},
		),
		pendingSaves: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "pending_saves",
				Help:      "Number of saves issued and not yet completed.",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "path"},
		),
	}

	m.Registry.MustRegister(
		m.storeOperations,
		m.storeDuration,
		m.boxes,
		m.pendingSaves,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveStoreOperation records the outcome and latency of a load or save.
func (m *Metrics) ObserveStoreOperation(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.storeOperations.WithLabelValues(operation, status).Inc()
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetBoxCount records the size of the in-memory collection.
func (m *Metrics) SetBoxCount(n int) {
	if m == nil {
		return
	}
	m.boxes.Set(float64(n))
}

// SaveStarted and SaveFinished track saves in flight.
func (m *Metrics) SaveStarted() {
	if m == nil {
		return
	}
	m.pendingSaves.Inc()
}

func (m *Metrics) SaveFinished() {
	if m == nil {
		return
	}
	m.pendingSaves.Dec()
}

// ObserveHTTPRequest records a handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
