package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/avmux/filter"
)

// middlewareMetrics holds Prometheus metrics for the built-in filters.
type middlewareMetrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestsInFlight  prometheus.Gauge
	panicsRecovered   prometheus.Counter
	rateLimitRejected prometheus.Counter
	breakerRejected   *prometheus.CounterVec
}

var (
	middlewareMetricsInstance *middlewareMetrics
	middlewareMetricsOnce     sync.Once
)

// getMiddlewareMetrics returns the singleton middleware metrics
// instance.
func getMiddlewareMetrics() *middlewareMetrics {
	middlewareMetricsOnce.Do(func() {
		middlewareMetricsInstance = &middlewareMetrics{
			requestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "requests_total",
					Help:      "Total number of HTTP requests by method and status",
				},
				[]string{"method", "status"},
			),
			requestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "request_duration_seconds",
					Help:      "HTTP request duration by method",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"method"},
			),
			requestsInFlight: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "requests_in_flight",
					Help:      "Number of HTTP requests currently being served",
				},
			),
			panicsRecovered: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "panics_recovered_total",
					Help:      "Total number of panics recovered by the recovery filter",
				},
			),
			rateLimitRejected: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "rate_limit_rejected_total",
					Help:      "Total number of requests rejected by the rate limiter",
				},
			),
			breakerRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "middleware",
					Name:      "circuit_breaker_rejected_total",
					Help:      "Total number of requests rejected by an open circuit breaker",
				},
				[]string{"name"},
			),
		}
	})
	return middlewareMetricsInstance
}

// Metrics returns a filter that records request counts, durations, and
// in-flight gauge for every request passing through it.
func Metrics() filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		metrics := getMiddlewareMetrics()
		start := time.Now()

		metrics.requestsInFlight.Inc()
		defer metrics.requestsInFlight.Dec()

		rw := wrapWriter(w)

		next.ServeHTTP(rw, r)

		metrics.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.status)).Inc()
		metrics.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
