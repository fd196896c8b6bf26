package config

import (
	"fmt"
	"strings"

	"github.com/vyrodovalexey/avmux/dispatch"
	"github.com/vyrodovalexey/avmux/match"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// HasErrors returns true if there are validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates a configuration document.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates a configuration document.
func Validate(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	if cfg == nil {
		v.addError("", "configuration is nil")
		return v.errors
	}

	v.validateListen(&cfg.Listen)
	v.validateLog(&cfg.Log)
	v.validateMiddleware(&cfg.Middleware)
	if cfg.NotFound != nil {
		v.validateResponse(cfg.NotFound, "notFound")
	}
	v.validateRoutes(cfg.Routes)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateListen(listen *ListenConfig) {
	if listen.Port <= 0 || listen.Port > 65535 {
		v.addError("listen.port", fmt.Sprintf("port must be between 1 and 65535, got %d", listen.Port))
	}
	if listen.ReadTimeout < 0 {
		v.addError("listen.readTimeout", "timeout must not be negative")
	}
	if listen.WriteTimeout < 0 {
		v.addError("listen.writeTimeout", "timeout must not be negative")
	}
	if listen.IdleTimeout < 0 {
		v.addError("listen.idleTimeout", "timeout must not be negative")
	}
}

func (v *Validator) validateLog(log *LogConfig) {
	switch log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		v.addError("log.level", fmt.Sprintf("unknown level %q", log.Level))
	}
	switch log.Format {
	case "", "json", "console":
	default:
		v.addError("log.format", fmt.Sprintf("unknown format %q", log.Format))
	}
}

func (v *Validator) validateMiddleware(mw *MiddlewareConfig) {
	if mw.RateLimit != nil {
		if mw.RateLimit.RPS <= 0 {
			v.addError("middleware.rateLimit.rps", "rps must be positive")
		}
		if mw.RateLimit.Burst <= 0 {
			v.addError("middleware.rateLimit.burst", "burst must be positive")
		}
	}
	if mw.Breaker != nil {
		if mw.Breaker.FailureRatio < 0 || mw.Breaker.FailureRatio > 1 {
			v.addError("middleware.circuitBreaker.failureRatio", "failureRatio must be between 0 and 1")
		}
		if mw.Breaker.Timeout < 0 {
			v.addError("middleware.circuitBreaker.timeout", "timeout must not be negative")
		}
	}
}

func (v *Validator) validateRoutes(routes []Route) {
	if len(routes) == 0 {
		v.addError("routes", "at least one route is required")
	}

	names := make(map[string]bool)
	for i, route := range routes {
		path := fmt.Sprintf("routes[%d]", i)
		v.validateRoute(&route, path, names)
	}
}

func (v *Validator) validateRoute(route *Route, path string, names map[string]bool) {
	if route.Name == "" {
		v.addError(path+".name", "name is required")
	} else if names[route.Name] {
		v.addError(path+".name", fmt.Sprintf("duplicate route name %q", route.Name))
	} else {
		names[route.Name] = true
	}

	if _, err := dispatch.EncodeMethods(route.Methods); err != nil {
		v.addError(path+".methods", err.Error())
	}

	if len(route.Patterns) == 0 {
		v.addError(path+".patterns", "at least one pattern is required")
	}
	for j, raw := range route.Patterns {
		if _, err := match.Compile(raw); err != nil {
			v.addError(fmt.Sprintf("%s.patterns[%d]", path, j), err.Error())
		}
	}

	if route.Handler == "" && route.Response == nil {
		v.addError(path, "either handler or response is required")
	}
	if route.Handler != "" && route.Response != nil {
		v.addError(path, "handler and response are mutually exclusive")
	}
	if route.Response != nil {
		v.validateResponse(route.Response, path+".response")
	}
}

func (v *Validator) validateResponse(resp *ResponseConfig, path string) {
	if resp.Status < 100 || resp.Status > 599 {
		v.addError(path+".status", fmt.Sprintf("status must be between 100 and 599, got %d", resp.Status))
	}
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}
