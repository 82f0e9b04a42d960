package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the API surface.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Completed HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)).Inc()
	m.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(elapsed.Seconds())
}

// PricingMetrics counts pricing engine activity.
type PricingMetrics struct {
	recomputes prometheus.Counter
	degraded   prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	recomputes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_recomputes_total",
		Help: "Full quote totals recomputations.",
	})
	degraded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_degraded_total",
		Help: "Recomputations that ran without a discount matrix snapshot.",
	})
	reg.MustRegister(recomputes, degraded)
	return &PricingMetrics{recomputes: recomputes, degraded: degraded}
}

// IncRecompute counts one full totals recomputation.
func (m *PricingMetrics) IncRecompute() {
	if m == nil || m.recomputes == nil {
		return
	}
	m.recomputes.Inc()
}

// IncDegraded counts a recomputation that fell back to an empty matrix.
func (m *PricingMetrics) IncDegraded() {
	if m == nil || m.degraded == nil {
		return
	}
	m.degraded.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
