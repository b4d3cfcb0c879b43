// Package metrics exposes request and upstream counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the collectors of one process. A nil *Registry is valid and
// records nothing.
type Registry struct {
	reg            *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	upstream       *prometheus.CounterVec
	partialResults prometheus.Counter
}

// New creates a registry with all collectors registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamfinder_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streamfinder_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamfinder_upstream_requests_total",
			Help: "TMDB requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		partialResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamfinder_partial_results_total",
			Help: "Titles returned without provider data because their detail fetch failed.",
		}),
	}
	r.reg.MustRegister(r.requests, r.duration, r.upstream, r.partialResults)
	return r
}

// Wrap counts requests and their latency under the given route name.
func (r *Registry) Wrap(route string, next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		r.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		r.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveUpstream records one TMDB call. outcome is "ok", "status" or "error".
func (r *Registry) ObserveUpstream(endpoint, outcome string) {
	if r == nil {
		return
	}
	r.upstream.WithLabelValues(endpoint, outcome).Inc()
}

// IncPartial records a title that degraded to empty provider data.
func (r *Registry) IncPartial() {
	if r == nil {
		return
	}
	r.partialResults.Inc()
}

// Handler serves the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
