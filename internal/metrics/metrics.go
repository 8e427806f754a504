package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "krishisakhi"

// holds every collector exposed on /metrics
type Metrics struct {
	registry *prometheus.Registry

	// generation service calls
	GenerationRequests *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec

	// HTTP API
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// entity store
	StoreOps *prometheus.CounterVec

	// domain events
	Detections *prometheus.CounterVec
}

// creates collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		GenerationRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generation_requests_total",
				Help:      "Calls to the generation service by operation and outcome",
			},
			[]string{"op", "outcome"}, // outcome: ok|invalid_request|network_error|upstream_error|malformed_response|cancelled
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Latency of generation service calls",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s..64s
			},
			[]string{"op"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		StoreOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_ops_total",
				Help:      "Entity store operations by kind, operation and result",
			},
			[]string{"kind", "op", "result"}, // result: ok|not_found|error
		),
		Detections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detections_total",
				Help:      "Completed crop diagnoses by severity",
			},
			[]string{"severity"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GenerationRequests,
		m.GenerationDuration,
		m.HTTPRequests,
		m.HTTPDuration,
		m.StoreOps,
		m.Detections,
	)

	return m
}

// serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveGeneration(op, outcome string, d time.Duration) {
	m.GenerationRequests.WithLabelValues(op, outcome).Inc()
	m.GenerationDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) IncStoreOp(kind, op, result string) {
	m.StoreOps.WithLabelValues(kind, op, result).Inc()
}

func (m *Metrics) IncDetection(severity string) {
	if severity == "" {
		severity = "unknown"
	}

	m.Detections.WithLabelValues(severity).Inc()
}

// records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
