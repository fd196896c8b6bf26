package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/filter"
)

// run builds a filtered handler over base and serves one request.
func run(t *testing.T, base http.Handler, f filter.Filter, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	h, err := filter.NewFilteredHandler(base, f)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// okHandler answers 200 with a fixed body.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})
