package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scorebot"

// Recorder tracks ESPN calls and selection outcomes. A nil Recorder is a
// no-op so callers never need to guard it.
type Recorder struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	selections *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "espn_requests_total",
			Help:      "ESPN API requests by endpoint and HTTP status (0 = transport failure).",
		}, []string{"endpoint", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "espn_request_duration_seconds",
			Help:      "ESPN API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Day selections by league and outcome.",
		}, []string{"league", "outcome"}),
	}

	registry.MustRegister(
		r.requests,
		r.latency,
		r.selections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveRequest(endpoint string, statusCode int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	r.latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveSelection counts one selection; outcome is "live", "found", "empty" or "error".
func (r *Recorder) ObserveSelection(league, outcome string) {
	if r == nil {
		return
	}
	r.selections.WithLabelValues(league, outcome).Inc()
}

func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
