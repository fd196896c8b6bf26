package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/internal/util"
)

func TestRequestID_Generates(t *testing.T) {
	t.Parallel()

	var seen string
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = util.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := run(t, base, RequestID(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesInbound(t *testing.T) {
	t.Parallel()

	var seen string
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = util.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "inbound-id")

	rec := run(t, base, RequestID(), req)

	assert.Equal(t, "inbound-id", seen)
	assert.Equal(t, "inbound-id", rec.Header().Get(RequestIDHeader))
}

func TestRequestIDWithGenerator(t *testing.T) {
	t.Parallel()

	f := RequestIDWithGenerator(func() string { return "fixed-id" })

	rec := run(t, okHandler, f, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}
