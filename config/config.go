// Package config defines the declarative configuration for hosts that
// build their route tables and filter chains from YAML files.
package config

import "fmt"

// Config is the root configuration document.
type Config struct {
	Listen     ListenConfig     `yaml:"listen" json:"listen"`
	Log        LogConfig        `yaml:"log,omitempty" json:"log,omitempty"`
	Middleware MiddlewareConfig `yaml:"middleware,omitempty" json:"middleware,omitempty"`
	NotFound   *ResponseConfig  `yaml:"notFound,omitempty" json:"notFound,omitempty"`
	Routes     []Route          `yaml:"routes" json:"routes"`
}

// ListenConfig describes the listener socket.
type ListenConfig struct {
	Bind         string   `yaml:"bind,omitempty" json:"bind,omitempty"`
	Port         int      `yaml:"port" json:"port"`
	ReadTimeout  Duration `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`
	WriteTimeout Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`
	IdleTimeout  Duration `yaml:"idleTimeout,omitempty" json:"idleTimeout,omitempty"`
}

// Address returns the bind address in host:port form.
func (l ListenConfig) Address() string {
	bind := l.Bind
	if bind == "" {
		bind = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", bind, l.Port)
}

// LogConfig describes logging output.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Route declares one route mapping: a method set, one or more path
// patterns, and either a named handler resolved from the host's
// registry or an inline direct response. List order is match priority.
type Route struct {
	Name     string          `yaml:"name" json:"name"`
	Methods  []string        `yaml:"methods,omitempty" json:"methods,omitempty"`
	Patterns []string        `yaml:"patterns" json:"patterns"`
	Handler  string          `yaml:"handler,omitempty" json:"handler,omitempty"`
	Response *ResponseConfig `yaml:"response,omitempty" json:"response,omitempty"`
}

// ResponseConfig is an inline direct response served without invoking
// an application handler.
type ResponseConfig struct {
	Status      int    `yaml:"status" json:"status"`
	Body        string `yaml:"body,omitempty" json:"body,omitempty"`
	ContentType string `yaml:"contentType,omitempty" json:"contentType,omitempty"`
}

// MiddlewareConfig toggles the built-in filters applied around the
// route table, in their fixed order: recovery, request ID, tracing,
// logging, metrics, rate limit, circuit breaker.
type MiddlewareConfig struct {
	Recovery  bool                  `yaml:"recovery,omitempty" json:"recovery,omitempty"`
	RequestID bool                  `yaml:"requestID,omitempty" json:"requestID,omitempty"`
	Tracing   bool                  `yaml:"tracing,omitempty" json:"tracing,omitempty"`
	Logging   bool                  `yaml:"logging,omitempty" json:"logging,omitempty"`
	Metrics   bool                  `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	RateLimit *RateLimitConfig      `yaml:"rateLimit,omitempty" json:"rateLimit,omitempty"`
	Breaker   *CircuitBreakerConfig `yaml:"circuitBreaker,omitempty" json:"circuitBreaker,omitempty"`
}

// RateLimitConfig configures the global token-bucket rate limiter.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" json:"rps"`
	Burst int     `yaml:"burst" json:"burst"`
}

// CircuitBreakerConfig configures the circuit breaker filter.
type CircuitBreakerConfig struct {
	Name         string   `yaml:"name,omitempty" json:"name,omitempty"`
	FailureRatio float64  `yaml:"failureRatio,omitempty" json:"failureRatio,omitempty"`
	MinRequests  uint32   `yaml:"minRequests,omitempty" json:"minRequests,omitempty"`
	Timeout      Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults and no
// routes.
func DefaultConfig() *Config {
	return &Config{
		Listen: ListenConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
