// Package metrics exposes Prometheus instrumentation for backend traffic and
// result-set synchronization.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricBackendRequestsTotal   = "storefront_backend_requests_total"
	MetricBackendRequestDuration = "storefront_backend_request_duration_seconds"
	MetricStaleResponsesTotal    = "storefront_stale_responses_total"
	MetricValidationErrorsTotal  = "storefront_validation_errors_total"
	MetricCacheLookupsTotal      = "storefront_cache_lookups_total"
)

// Metrics owns a private registry. All methods are safe on a nil receiver so
// components can be built without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	backendRequests  *prometheus.CounterVec
	backendDuration  *prometheus.HistogramVec
	staleResponses   prometheus.Counter
	validationErrors *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricBackendRequestsTotal,
			Help: "Backend API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricBackendRequestDuration,
			Help:    "Backend API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		staleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricStaleResponsesTotal,
			Help: "Query responses discarded because a newer query was issued.",
		}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricValidationErrorsTotal,
			Help: "Search submissions rejected before any network call.",
		}, []string{"kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCacheLookupsTotal,
			Help: "List cache lookups by result.",
		}, []string{"cache", "result"}),
	}

	m.registry.MustRegister(
		m.backendRequests,
		m.backendDuration,
		m.staleResponses,
		m.validationErrors,
		m.cacheLookups,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one backend round trip. status 0 means the request
// never produced a response.
func (m *Metrics) ObserveRequest(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(endpoint, code).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) StaleResponse() {
	if m == nil {
		return
	}
	m.staleResponses.Inc()
}

func (m *Metrics) ValidationError(kind string) {
	if m == nil {
		return
	}
	m.validationErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}
