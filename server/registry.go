// Package server hosts a route table built from declarative
// configuration behind a graceful HTTP listener with atomic reload.
package server

import (
	"net/http"
	"sort"
	"sync"

	"github.com/vyrodovalexey/avmux/internal/util"
)

// Registry maps handler names referenced by configuration to
// application handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]http.Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]http.Handler),
	}
}

// Register associates a handler with a name. Registering a name twice
// replaces the previous handler.
func (r *Registry) Register(name string, handler http.Handler) error {
	if name == "" {
		return util.NewConfigError("handler", "name must not be empty")
	}
	if handler == nil {
		return util.NewConfigError("handler", "handler must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	return nil
}

// RegisterFunc associates a handler function with a name.
func (r *Registry) RegisterFunc(name string, handler http.HandlerFunc) error {
	if handler == nil {
		return util.NewConfigError("handler", "handler must not be nil")
	}
	return r.Register(name, handler)
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (http.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered handler names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
