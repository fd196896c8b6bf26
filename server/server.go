package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vyrodovalexey/avmux/config"
	"github.com/vyrodovalexey/avmux/observability"
)

// Server hosts a configured route table behind an HTTP listener. The
// active handler is swapped atomically on Reload, so in-flight
// requests finish on the table they started with.
type Server struct {
	registry *Registry
	logger   observability.Logger
	handler  atomic.Pointer[http.Handler]
	listen   config.ListenConfig
	server   *http.Server
	running  atomic.Bool
}

// Option is a functional option for configuring the server.
type Option func(*Server)

// WithServerLogger sets the logger for the server.
func WithServerLogger(logger observability.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds a server from a validated configuration. Named handlers
// are resolved through the registry at build time.
func New(cfg *config.Config, registry *Registry, opts ...Option) (*Server, error) {
	if registry == nil {
		registry = NewRegistry()
	}

	s := &Server{
		registry: registry,
		logger:   observability.NopLogger(),
		listen:   cfg.Listen,
	}

	for _, opt := range opts {
		opt(s)
	}

	handler, err := buildHandler(cfg, registry, s.logger)
	if err != nil {
		return nil, err
	}
	s.handler.Store(&handler)

	return s, nil
}

// Reload rebuilds the route table and filter chain from cfg and swaps
// it in atomically. On build failure the previous handler stays
// active.
func (s *Server) Reload(cfg *config.Config) error {
	handler, err := buildHandler(cfg, s.registry, s.logger)
	if err != nil {
		return fmt.Errorf("failed to rebuild routes: %w", err)
	}

	s.handler.Store(&handler)

	s.logger.Info("routes reloaded",
		observability.Int("routes", len(cfg.Routes)),
	)

	return nil
}

// ServeHTTP dispatches to the currently active handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*s.handler.Load()).ServeHTTP(w, r)
}

// Address returns the listen address in host:port form.
func (s *Server) Address() string {
	return s.listen.Address()
}

// Start starts the HTTP listener.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return fmt.Errorf("server is already running")
	}

	addr := s.Address()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       timeoutOr(s.listen.ReadTimeout, 30*time.Second),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      timeoutOr(s.listen.WriteTimeout, 30*time.Second),
		IdleTimeout:       timeoutOr(s.listen.IdleTimeout, 120*time.Second),
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.running.Store(true)

	s.logger.Info("server started",
		observability.String("address", addr),
	)

	go s.serve(ln)

	return nil
}

func (s *Server) serve(ln net.Listener) {
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		s.logger.Error("server error",
			observability.Error(err),
		)
	}
	s.running.Store(false)
}

// Stop stops the listener gracefully, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	s.logger.Info("stopping server")

	if err := s.server.Shutdown(ctx); err != nil {
		if closeErr := s.server.Close(); closeErr != nil {
			return fmt.Errorf("failed to close server: %w", closeErr)
		}
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	s.running.Store(false)

	s.logger.Info("server stopped")

	return nil
}

// IsRunning returns true if the listener is accepting requests.
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

func timeoutOr(d config.Duration, fallback time.Duration) time.Duration {
	if d > 0 {
		return d.Duration()
	}
	return fallback
}
