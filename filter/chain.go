// Package filter composes middleware around a terminal handler as an
// immutable, singly-linked chain executed per request via explicit
// continuations.
//
// Each Filter receives the request, the response writer, and a
// continuation representing the rest of the chain. Calling the
// continuation proceeds to the next filter (or the terminal handler);
// returning without calling it short-circuits, making the response as
// currently written final. The chain itself never intercepts panics or
// errors raised by filters or handlers; see middleware.Recovery for an
// opt-in filter that does.
package filter

import (
	"net/http"

	"github.com/vyrodovalexey/avmux/internal/util"
)

// ErrNoTerminal is returned when a chain is built without a terminal
// handler. A chain with no terminal is a construction defect, reported
// at setup time, never deferred to request time.
var ErrNoTerminal = util.NewConfigError("chain", "filter chain has no terminal handler")

// Filter is a middleware unit. DoFilter may inspect or mutate the
// request and response, then call next to proceed, or return without
// calling it to short-circuit the remainder of the chain.
type Filter interface {
	DoFilter(w http.ResponseWriter, r *http.Request, next http.Handler)
}

// Func adapts an ordinary function to the Filter interface.
type Func func(w http.ResponseWriter, r *http.Request, next http.Handler)

// DoFilter implements Filter.
func (f Func) DoFilter(w http.ResponseWriter, r *http.Request, next http.Handler) {
	f(w, r, next)
}

// filterNode is a non-terminal chain node: one filter plus the rest of
// the chain as its continuation. Nodes are never re-linked after
// construction and are safely shared across concurrent requests.
type filterNode struct {
	filter Filter
	next   http.Handler
}

// ServeHTTP invokes the node's filter with the rest of the chain as
// the continuation.
func (n *filterNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.filter.DoFilter(w, r, n.next)
}

// terminalNode wraps the base handler and exposes no further
// continuation.
type terminalNode struct {
	handler http.Handler
}

// ServeHTTP invokes the base handler.
func (n *terminalNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.handler.ServeHTTP(w, r)
}

// Chain is an immutable filter chain. The zero value is the empty
// chain: serving it reports a defined configuration defect instead of
// hanging or silently doing nothing.
type Chain struct {
	root http.Handler
}

// Build constructs a chain from the ordered filter list terminating in
// base. Filters run in list order; the first filter sees the request
// first. A nil base is ErrNoTerminal.
func Build(base http.Handler, filters ...Filter) (*Chain, error) {
	if base == nil {
		return nil, ErrNoTerminal
	}
	for _, f := range filters {
		if f == nil {
			return nil, util.NewConfigError("chain", "filter must not be nil")
		}
	}

	// Link back to front so each node points at the already-built
	// remainder of the chain.
	var node http.Handler = &terminalNode{handler: base}
	for i := len(filters) - 1; i >= 0; i-- {
		node = &filterNode{filter: filters[i], next: node}
	}

	return &Chain{root: node}, nil
}

// ServeHTTP runs the chain from its first node. An empty chain answers
// 500 with a diagnostic body.
func (c *Chain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c == nil || c.root == nil {
		http.Error(w, ErrNoTerminal.Error(), http.StatusInternalServerError)
		return
	}
	c.root.ServeHTTP(w, r)
}
