package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/filter"
)

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	t.Parallel()

	rec := run(t, okHandler, RateLimit(100, 10),
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_ShortCircuitsWhenExhausted(t *testing.T) {
	t.Parallel()

	var baseCalls int
	base := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		baseCalls++
		w.WriteHeader(http.StatusOK)
	})

	h, err := filter.NewFilteredHandler(base, RateLimit(0.0001, 1))
	require.NoError(t, err)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, second.Body.String())
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	// Rejected request never reached the base handler.
	assert.Equal(t, 1, baseCalls)
}
