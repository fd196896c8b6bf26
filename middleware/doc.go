// Package middleware provides built-in filters for the dispatch
// library.
//
// Every component implements filter.Filter: it receives the request,
// the response writer, and the rest of the chain as an explicit
// continuation, and decides whether processing proceeds.
//
// # Components
//
//   - Logging: structured request/response logging
//   - Recovery: panic recovery with stack trace logging
//   - RequestID: unique request identifier injection
//   - Metrics: Prometheus request counters and latency histograms
//   - RateLimit: token bucket rate limiting
//   - CircuitBreaker: short-circuits when downstream failure rates trip
//   - Tracing: OpenTelemetry server spans
//   - Wrap: bridge for standard func(http.Handler) http.Handler
//     middleware
//
// # Usage
//
//	h, err := filter.NewFilteredHandler(table,
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	    middleware.Metrics(),
//	)
package middleware
