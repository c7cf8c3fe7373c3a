package monitoring

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics manages the Prometheus metrics for the service. All methods are
// safe on a nil receiver so components can run without metrics in tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	searchesTotal     *prometheus.CounterVec
	cacheHitsTotal    *prometheus.CounterVec
	cacheMissesTotal  *prometheus.CounterVec
	upstreamErrors    *prometheus.CounterVec
}

func NewMetrics(serviceName string) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_upstream_searches_total",
			Help: "Completed upstream search calls",
		},
		[]string{"kind"},
	)

	m.cacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_cache_hits_total",
			Help: "Search cache hits",
		},
		[]string{"kind"},
	)

	m.cacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_cache_misses_total",
			Help: "Search cache misses",
		},
		[]string{"kind"},
	)

	m.upstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_upstream_errors_total",
			Help: "Failed upstream calls by provider",
		},
		[]string{"provider"},
	)

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.searchesTotal,
		m.cacheHitsTotal,
		m.cacheMissesTotal,
		m.upstreamErrors,
	)

	return m
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (m *Metrics) RecordSearch(kind string) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheHit(kind string) {
	if m == nil {
		return
	}
	m.cacheHitsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheMiss(kind string) {
	if m == nil {
		return
	}
	m.cacheMissesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordUpstreamError(provider string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(provider).Inc()
}
