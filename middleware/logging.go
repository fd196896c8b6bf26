package middleware

import (
	"net/http"
	"time"

	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/observability"
)

// Logging returns a filter that logs each request with its final
// status, size, duration, and the matched route name when dispatch
// reports one through the route carrier.
func Logging(logger observability.Logger) filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		start := time.Now()

		ctx := util.ContextWithStartTime(r.Context(), start)
		ctx, route := util.ContextWithRouteCarrier(ctx)
		r = r.WithContext(ctx)

		rw := wrapWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		requestID := util.RequestIDFromContext(r.Context())

		logger.Info("http request",
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
			observability.String("query", r.URL.RawQuery),
			observability.String("route", route.Name()),
			observability.Int("status", rw.status),
			observability.Int("size", rw.size),
			observability.Duration("duration", duration),
			observability.String("remote_addr", r.RemoteAddr),
			observability.String("user_agent", r.UserAgent()),
			observability.String("request_id", requestID),
		)
	})
}
