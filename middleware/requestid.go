package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/internal/util"
)

// RequestIDHeader is the header name for request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a filter that assigns each request a unique ID,
// reusing an inbound X-Request-ID when present.
func RequestID() filter.Filter {
	return RequestIDWithGenerator(func() string {
		return uuid.New().String()
	})
}

// RequestIDWithGenerator returns a request-ID filter with a custom ID
// generator.
func RequestIDWithGenerator(generator func() string) filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = generator()
		}

		ctx := util.ContextWithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}
