package middleware

import (
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/vyrodovalexey/avmux/filter"
)

// RateLimit returns a filter enforcing a global token-bucket limit of
// rps requests per second with the given burst. Rejected requests are
// short-circuited with 429 and never reach the rest of the chain.
func RateLimit(rps float64, burst int) filter.Filter {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return RateLimitWithLimiter(limiter)
}

// RateLimitWithLimiter returns a rate-limiting filter backed by a
// caller-supplied limiter, allowing limiters shared across chains.
func RateLimitWithLimiter(limiter *rate.Limiter) filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		if !limiter.Allow() {
			getMiddlewareMetrics().rateLimitRejected.Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":"rate limit exceeded"}`)
			return
		}

		next.ServeHTTP(w, r)
	})
}
