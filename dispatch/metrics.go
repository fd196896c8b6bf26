package dispatch

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// tableMetrics contains Prometheus metrics for route-table dispatch.
type tableMetrics struct {
	dispatchedTotal *prometheus.CounterVec
	notFoundTotal   prometheus.Counter
	matchDuration   prometheus.Histogram
}

var (
	tableMetricsInstance *tableMetrics
	tableMetricsOnce     sync.Once
)

// getTableMetrics returns the singleton dispatch metrics instance.
func getTableMetrics() *tableMetrics {
	tableMetricsOnce.Do(func() {
		tableMetricsInstance = &tableMetrics{
			dispatchedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "dispatch",
					Name:      "requests_dispatched_total",
					Help:      "Total number of requests dispatched to a matched mapping",
				},
				[]string{"method"},
			),
			notFoundTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "avmux",
					Subsystem: "dispatch",
					Name:      "requests_not_found_total",
					Help:      "Total number of requests resolved to the not-found handler",
				},
			),
			matchDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "avmux",
					Subsystem: "dispatch",
					Name:      "match_duration_seconds",
					Help:      "Time spent scanning the route table per request",
					Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 8),
				},
			),
		}
	})
	return tableMetricsInstance
}
