package middleware

import (
	"net/http"

	"github.com/vyrodovalexey/avmux/filter"
)

// Wrap adapts a standard func(http.Handler) http.Handler middleware to
// the filter interface, so existing Go middleware can participate in a
// filter chain.
func Wrap(mw func(http.Handler) http.Handler) filter.Filter {
	return filter.Func(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		mw(next).ServeHTTP(w, r)
	})
}
