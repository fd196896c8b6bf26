package filter

import (
	"net/http"

	"github.com/vyrodovalexey/avmux/internal/util"
)

// FilteredHandler binds a filter chain and a base handler into a single
// http.Handler. It is the composition root of the package: hosts mount
// a FilteredHandler (whose base handler is typically a
// dispatch.RouteTable) on their server.
type FilteredHandler struct {
	chain *Chain
}

// NewFilteredHandler builds a chain from the ordered filter list over
// base and wraps it. The synthetic terminal appended for base
// guarantees the chain always has exactly one terminal.
func NewFilteredHandler(base http.Handler, filters ...Filter) (*FilteredHandler, error) {
	chain, err := Build(base, filters...)
	if err != nil {
		return nil, err
	}
	return &FilteredHandler{chain: chain}, nil
}

// NewFilteredHandlerFromChain wraps a pre-built chain.
func NewFilteredHandlerFromChain(chain *Chain) (*FilteredHandler, error) {
	if chain == nil || chain.root == nil {
		return nil, util.NewConfigError("chain", "filtered handler requires a built chain")
	}
	return &FilteredHandler{chain: chain}, nil
}

// ServeHTTP invokes the chain's root.
func (h *FilteredHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}
