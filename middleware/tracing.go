package middleware

import (
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/avmux/filter"
)

// tracerName identifies this library's tracer.
const tracerName = "avmux/middleware"

// Tracing returns a filter that wraps the rest of the chain in an
// OpenTelemetry server span named after the request. Spans are recorded
// through the globally registered tracer provider; without one, the
// filter is a cheap pass-through.
func Tracing() filter.Filter {
	return TracingNamed("")
}

// TracingNamed is Tracing with a fixed span name prefix, useful when a
// chain serves a single logical service.
func TracingNamed(name string) filter.Filter {
	tracer := otel.Tracer(tracerName)

	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		spanName := r.Method + " " + r.URL.Path
		if name != "" {
			spanName = name + " " + spanName
		}
		ctx, span := tracer.Start(r.Context(), spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		rw := wrapWriter(w)

		next.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", rw.status))
		if rw.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, strconv.Itoa(rw.status))
		}
	})
}
