package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "page_summarizer"

// Recorder owns the Prometheus collectors for the service. It uses a private
// registry so multiple instances (tests) never collide.
type Recorder struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	gateDecisions *prometheus.CounterVec

	providerCalls   *prometheus.CounterVec
	providerLatency prometheus.Histogram
	providerTokens  *prometheus.CounterVec
}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "status"},
	)
	r.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)
	r.gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Request gate outcomes (admitted or the rejection code).",
		},
		[]string{"outcome"},
	)
	r.providerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Chat completion calls by result category.",
		},
		[]string{"result"},
	)
	r.providerLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Chat completion latency in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
	r.providerTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "tokens_total",
			Help:      "Tokens reported by the provider, by kind.",
		},
		[]string{"kind"},
	)

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpLatency,
		r.gateDecisions,
		r.providerCalls,
		r.providerLatency,
		r.providerTokens,
	)
	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveHTTP records one served request.
func (r *Recorder) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveGate records a gate outcome.
func (r *Recorder) ObserveGate(outcome string) {
	if r == nil {
		return
	}
	r.gateDecisions.WithLabelValues(outcome).Inc()
}

// ObserveProvider records one provider call and, on success, its token usage.
func (r *Recorder) ObserveProvider(result string, elapsed time.Duration, usage TokenUsage) {
	if r == nil {
		return
	}
	r.providerCalls.WithLabelValues(result).Inc()
	r.providerLatency.Observe(elapsed.Seconds())
	if usage.IsZero() {
		return
	}
	r.providerTokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	r.providerTokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}
