// Package metrics exposes Prometheus collectors on a dedicated registry.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Optimizations counts optimization runs by outcome
	// (optimal, infeasible, time_limit, degenerate, error)
	Optimizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "roundtrip_optimizations_total", Help: "Round-trip optimization runs by outcome."},
		[]string{"status"},
	)

	// SolveDuration records the time spent inside the solver backend
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "roundtrip_solve_duration_seconds", Help: "Solver wall-clock time in seconds.", Buckets: prometheus.DefBuckets},
	)

	// Candidates records the number of candidate pairings per model
	Candidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "roundtrip_candidates", Help: "Candidate pairings per optimization model.", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Optimizations)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(Candidates)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	RegisterDefault()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveOptimization records the outcome of one optimization run.
func ObserveOptimization(status string, candidates int, solve time.Duration) {
	Optimizations.WithLabelValues(status).Inc()
	if candidates > 0 {
		Candidates.Observe(float64(candidates))
	}
	if solve > 0 {
		SolveDuration.Observe(solve.Seconds())
	}
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, path, status).Inc()
	HTTPDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}
