package server

import (
	"net/http"

	"github.com/vyrodovalexey/avmux/config"
	"github.com/vyrodovalexey/avmux/dispatch"
	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/middleware"
	"github.com/vyrodovalexey/avmux/observability"
)

// responseHandler serves a fixed response declared inline in
// configuration.
type responseHandler struct {
	status      int
	body        []byte
	contentType string
}

func newResponseHandler(resp config.ResponseConfig) *responseHandler {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	return &responseHandler{
		status:      resp.Status,
		body:        []byte(resp.Body),
		contentType: contentType,
	}
}

func (h *responseHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if len(h.body) > 0 {
		w.Header().Set("Content-Type", h.contentType)
	}
	w.WriteHeader(h.status)
	_, _ = w.Write(h.body)
}

// buildHandler assembles the route table and filter chain described by
// cfg, resolving named handlers through the registry.
func buildHandler(cfg *config.Config, registry *Registry, logger observability.Logger) (http.Handler, error) {
	table := dispatch.New(dispatch.WithLogger(logger))

	for _, route := range cfg.Routes {
		var handler http.Handler
		switch {
		case route.Handler != "":
			h, ok := registry.Get(route.Handler)
			if !ok {
				return nil, util.NewConfigError(
					"routes", "unknown handler "+route.Handler+" for route "+route.Name)
			}
			handler = h
		case route.Response != nil:
			handler = newResponseHandler(*route.Response)
		default:
			return nil, util.NewConfigError(
				"routes", "route "+route.Name+" has neither handler nor response")
		}

		table.AddNamedMapping(route.Name, route.Methods, route.Patterns, handler)
	}

	if cfg.NotFound != nil {
		table.SetNotFoundHandler(newResponseHandler(*cfg.NotFound))
	}

	if err := table.Err(); err != nil {
		return nil, err
	}

	filters := buildFilters(&cfg.Middleware, logger)
	if len(filters) == 0 {
		return table, nil
	}

	filtered, err := filter.NewFilteredHandler(table, filters...)
	if err != nil {
		return nil, err
	}
	return filtered, nil
}

// buildFilters returns the enabled filters in their fixed order.
// Recovery runs outermost so it also covers the other filters.
func buildFilters(mw *config.MiddlewareConfig, logger observability.Logger) []filter.Filter {
	var filters []filter.Filter

	if mw.Recovery {
		filters = append(filters, middleware.Recovery(logger))
	}
	if mw.RequestID {
		filters = append(filters, middleware.RequestID())
	}
	if mw.Tracing {
		filters = append(filters, middleware.Tracing())
	}
	if mw.Logging {
		filters = append(filters, middleware.Logging(logger))
	}
	if mw.Metrics {
		filters = append(filters, middleware.Metrics())
	}
	if mw.RateLimit != nil {
		filters = append(filters, middleware.RateLimit(mw.RateLimit.RPS, mw.RateLimit.Burst))
	}
	if mw.Breaker != nil {
		name := mw.Breaker.Name
		if name == "" {
			name = "server"
		}
		opts := []middleware.CircuitBreakerOption{
			middleware.WithBreakerLogger(logger),
		}
		if mw.Breaker.Timeout > 0 {
			opts = append(opts, middleware.WithBreakerTimeout(mw.Breaker.Timeout.Duration()))
		}
		if mw.Breaker.FailureRatio > 0 && mw.Breaker.MinRequests > 0 {
			opts = append(opts, middleware.WithBreakerThreshold(
				mw.Breaker.FailureRatio, mw.Breaker.MinRequests))
		}
		filters = append(filters, middleware.CircuitBreaker(name, opts...))
	}

	return filters
}
