package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/filter"
	"github.com/vyrodovalexey/avmux/observability"
)

func TestCircuitBreaker_ClosedPassesThrough(t *testing.T) {
	t.Parallel()

	rec := run(t, okHandler, CircuitBreaker("cb-closed"),
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	var baseCalls int
	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		baseCalls++
		w.WriteHeader(http.StatusBadGateway)
	})

	h, err := filter.NewFilteredHandler(failing, CircuitBreaker("cb-open",
		WithBreakerLogger(observability.NopLogger()),
		WithBreakerThreshold(0.5, 2),
	))
	require.NoError(t, err)

	// Trip the breaker with consecutive 5xx responses.
	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	}

	// Breaker is open: the chain is short-circuited with 503.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"service unavailable"}`, rec.Body.String())
	assert.Equal(t, 2, baseCalls)
}

func TestCircuitBreaker_4xxIsNotFailure(t *testing.T) {
	t.Parallel()

	clientErr := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	h, err := filter.NewFilteredHandler(clientErr, CircuitBreaker("cb-4xx",
		WithBreakerThreshold(0.5, 2),
	))
	require.NoError(t, err)

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}
