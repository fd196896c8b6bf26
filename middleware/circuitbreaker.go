package middleware

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/observability"
)

// errDownstreamFailure marks a 5xx response so the breaker counts it as
// a failure; the response itself has already been written.
var errDownstreamFailure = errors.New("downstream returned server error")

// CircuitBreakerOption is a functional option for configuring the
// circuit breaker filter.
type CircuitBreakerOption func(*breakerConfig)

type breakerConfig struct {
	logger       observability.Logger
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	failureRatio float64
	minRequests  uint32
}

// WithBreakerLogger sets the logger for state-change events.
func WithBreakerLogger(logger observability.Logger) CircuitBreakerOption {
	return func(c *breakerConfig) {
		c.logger = logger
	}
}

// WithBreakerTimeout sets how long the breaker stays open before
// probing half-open.
func WithBreakerTimeout(timeout time.Duration) CircuitBreakerOption {
	return func(c *breakerConfig) {
		c.timeout = timeout
	}
}

// WithBreakerThreshold sets the failure ratio and minimum request count
// that trip the breaker.
func WithBreakerThreshold(failureRatio float64, minRequests uint32) CircuitBreakerOption {
	return func(c *breakerConfig) {
		c.failureRatio = failureRatio
		c.minRequests = minRequests
	}
}

// CircuitBreaker returns a filter that trips open when the downstream
// chain keeps answering 5xx, short-circuiting subsequent requests with
// 503 until the breaker probes half-open again.
func CircuitBreaker(name string, opts ...CircuitBreakerOption) filter.Filter {
	cfg := &breakerConfig{
		logger:       observability.NopLogger(),
		maxRequests:  1,
		interval:     time.Minute,
		timeout:      30 * time.Second,
		failureRatio: 0.5,
		minRequests:  5,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.maxRequests,
		Interval:    cfg.interval,
		Timeout:     cfg.timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			cfg.logger.Warn("circuit breaker state change",
				observability.String("name", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()),
			)
		},
	})

	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		_, err := cb.Execute(func() (interface{}, error) {
			rw := wrapWriter(w)
			next.ServeHTTP(rw, r)
			if rw.status >= http.StatusInternalServerError {
				return nil, errDownstreamFailure
			}
			return nil, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			getMiddlewareMetrics().breakerRejected.WithLabelValues(name).Inc()
			cfg.logger.Debug("request rejected by open circuit breaker",
				observability.String("name", name),
				observability.Error(util.NewCircuitOpenError(name)),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":"service unavailable"}`)
		}
	})
}
