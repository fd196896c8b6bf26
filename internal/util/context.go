package util

import (
	"context"
	"time"
)

// Context keys.
type ctxKey string

const (
	ctxKeyRequestID    ctxKey = "request_id"
	ctxKeyStartTime    ctxKey = "start_time"
	ctxKeyRoute        ctxKey = "route"
	ctxKeyRouteCarrier ctxKey = "route_carrier"
)

// ContextWithRequestID adds a request ID to the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// ContextWithStartTime adds a start time to the context.
func ContextWithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ctxKeyStartTime, t)
}

// StartTimeFromContext extracts the start time from context.
func StartTimeFromContext(ctx context.Context) time.Time {
	if v, ok := ctx.Value(ctxKeyStartTime).(time.Time); ok {
		return v
	}
	return time.Time{}
}

// ContextWithRoute adds a route mapping name to the context.
func ContextWithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, ctxKeyRoute, route)
}

// RouteFromContext extracts the route mapping name from context.
func RouteFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRoute).(string); ok {
		return v
	}
	return ""
}

// RouteCarrier lets handlers upstream of dispatch observe which route
// mapping matched downstream. Context values only flow inward, so an
// access logger that runs before dispatch installs a carrier and reads
// it back after the request completes. Written and read on the request
// goroutine.
type RouteCarrier struct {
	name string
}

// Set records the matched route name.
func (c *RouteCarrier) Set(name string) {
	if c == nil {
		return
	}
	c.name = name
}

// Name returns the recorded route name, or empty when nothing matched.
func (c *RouteCarrier) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// ContextWithRouteCarrier installs a fresh route carrier in the
// context and returns it.
func ContextWithRouteCarrier(ctx context.Context) (context.Context, *RouteCarrier) {
	c := &RouteCarrier{}
	return context.WithValue(ctx, ctxKeyRouteCarrier, c), c
}

// RouteCarrierFromContext extracts the route carrier from context, or
// nil when none was installed.
func RouteCarrierFromContext(ctx context.Context) *RouteCarrier {
	if c, ok := ctx.Value(ctxKeyRouteCarrier).(*RouteCarrier); ok {
		return c
	}
	return nil
}

// ElapsedTime returns the elapsed time since the start time in context.
func ElapsedTime(ctx context.Context) time.Duration {
	startTime := StartTimeFromContext(ctx)
	if startTime.IsZero() {
		return 0
	}
	return time.Since(startTime)
}
