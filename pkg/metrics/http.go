package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request metadata for the API surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{duration: duration, requests: requests}
}

// Observe records a handled request.
func (h *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.duration == nil {
		return
	}
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
	h.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
}

// LookupMetrics tracks calls to the remote delivery-options service.
type LookupMetrics struct {
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

// Lookup outcome labels.
const (
	LookupOutcomeOK        = "ok"
	LookupOutcomeNoResults = "no_results"
	LookupOutcomeError     = "error"
	LookupOutcomeCacheHit  = "cache_hit"
)

// NewLookupMetrics registers the carrier lookup metrics.
func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	if reg == nil {
		return &LookupMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carrier_lookup_total",
		Help: "Remote delivery-options lookups by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "carrier_lookup_duration_seconds",
		Help:    "Duration of remote delivery-options lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(outcomes, duration)
	return &LookupMetrics{outcomes: outcomes, duration: duration}
}

// IncOutcome increments the counter for the given lookup outcome.
func (l *LookupMetrics) IncOutcome(outcome string) {
	if l == nil || l.outcomes == nil {
		return
	}
	l.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDuration records the remote call latency.
func (l *LookupMetrics) ObserveDuration(elapsed time.Duration) {
	if l == nil || l.duration == nil {
		return
	}
	l.duration.Observe(elapsed.Seconds())
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
