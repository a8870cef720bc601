// Package metrics exposes the relay's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway call outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeRateLimited     = "rate_limited"
	OutcomePaymentRequired = "payment_required"
	OutcomeError           = "error"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Relay metrics
	gatewayRequestsTotal   *prometheus.CounterVec
	gatewayRequestDuration prometheus.Histogram
	cacheOperations        *prometheus.CounterVec
	rateLimitedTotal       prometheus.Counter
}

// NewMetricsCollector creates a collector backed by its own registry.
func NewMetricsCollector() *MetricsCollector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &MetricsCollector{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		gatewayRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_gateway_requests_total",
				Help: "Chat-completion gateway calls by outcome",
			},
			[]string{"outcome"},
		),
		gatewayRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "relay_gateway_request_duration_seconds",
				Help:    "Chat-completion gateway call duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_details_cache_total",
				Help: "Recipe details cache lookups by result",
			},
			[]string{"result"},
		),
		rateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// HTTPMiddleware records request counts and latency per route.
func (m *MetricsCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// GatewayRequest records one gateway call. Safe on a nil collector.
func (m *MetricsCollector) GatewayRequest(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.gatewayRequestsTotal.WithLabelValues(outcome).Inc()
	m.gatewayRequestDuration.Observe(duration.Seconds())
}

// CacheLookup records a details cache hit or miss. Safe on a nil collector.
func (m *MetricsCollector) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOperations.WithLabelValues(result).Inc()
}

// RateLimited counts a rejected request. Safe on a nil collector.
func (m *MetricsCollector) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Inc()
}

// Registry returns the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
