package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracing_PassThrough(t *testing.T) {
	t.Parallel()

	// Without a registered tracer provider the filter must be a
	// transparent pass-through.
	rec := run(t, okHandler, Tracing(),
		httptest.NewRequest(http.MethodGet, "/users/34", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTracingNamed_PassThrough(t *testing.T) {
	t.Parallel()

	rec := run(t, okHandler, TracingNamed("users"),
		httptest.NewRequest(http.MethodGet, "/users/34", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTracing_ServerError(t *testing.T) {
	t.Parallel()

	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := run(t, failing, Tracing(),
		httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
