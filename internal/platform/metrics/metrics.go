// Package metrics exposes Prometheus metrics for provider calls and HTTP
// traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeSuccess labels successful attempts and generations.
const OutcomeSuccess = "success"

// Recorder holds the application's collectors on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	attempts         *prometheus.CounterVec
	attemptDuration  *prometheus.HistogramVec
	backoffs         *prometheus.CounterVec
	backoffSeconds   *prometheus.CounterVec
	generations      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpRequestTimes *prometheus.HistogramVec
}

var _ generation.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with a fresh registry that also carries the
// Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideaforge_provider_attempts_total",
				Help: "Total number of AI provider attempts by outcome",
			},
			[]string{"provider", "outcome"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ideaforge_provider_attempt_duration_seconds",
				Help:    "AI provider attempt latency in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),
		backoffs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideaforge_provider_retries_total",
				Help: "Total number of retries scheduled after a retryable failure",
			},
			[]string{"provider"},
		),
		backoffSeconds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideaforge_provider_backoff_seconds_total",
				Help: "Total time spent waiting between attempts",
			},
			[]string{"provider"},
		),
		generations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideaforge_generations_total",
				Help: "Total number of idea generation requests by outcome",
			},
			[]string{"provider", "outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideaforge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestTimes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ideaforge_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the registry holding all collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func outcome(err *generation.ProviderError) string {
	if err == nil {
		return OutcomeSuccess
	}
	return string(err.Kind)
}

// ObserveAttempt implements generation.Observer
func (r *Recorder) ObserveAttempt(provider string, _ int, d time.Duration, err *generation.ProviderError) {
	r.attempts.WithLabelValues(provider, outcome(err)).Inc()
	r.attemptDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveBackoff implements generation.Observer
func (r *Recorder) ObserveBackoff(provider string, delay time.Duration) {
	r.backoffs.WithLabelValues(provider).Inc()
	r.backoffSeconds.WithLabelValues(provider).Add(delay.Seconds())
}

// ObserveGeneration implements generation.Observer
func (r *Recorder) ObserveGeneration(provider string, err *generation.ProviderError) {
	r.generations.WithLabelValues(provider, outcome(err)).Inc()
}

// Middleware records request counts and latency labelled by the chi route
// pattern, which keeps label cardinality bounded.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpRequestTimes.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}
