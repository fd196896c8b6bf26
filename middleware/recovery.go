package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/observability"
)

// Recovery returns a filter that recovers from panics in downstream
// filters and handlers. The dispatch and chain cores never intercept
// panics themselves; install this filter first when that behavior is
// wanted.
func Recovery(logger observability.Logger) filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				logger.Error("panic recovered",
					observability.String("path", r.URL.Path),
					observability.String("method", r.Method),
					observability.Any("error", err),
					observability.String("stack", string(stack)),
				)

				getMiddlewareMetrics().panicsRecovered.Inc()

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"error":"internal server error"}`)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
