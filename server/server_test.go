package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/config"
	"github.com/vyrodovalexey/avmux/dispatch"
)

func testConfig() *config.Config {
	return &config.Config{
		Listen: config.ListenConfig{Bind: "127.0.0.1", Port: 0},
		Routes: []config.Route{
			{
				Name:     "home",
				Methods:  []string{"GET"},
				Patterns: []string{"/home"},
				Handler:  "home",
			},
			{
				Name:     "user",
				Methods:  []string{"GET"},
				Patterns: []string{"/users/:id:ulong"},
				Handler:  "user",
			},
			{
				Name:     "health",
				Patterns: []string{"/healthz"},
				Response: &config.ResponseConfig{Status: 200, Body: "ok"},
			},
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.RegisterFunc("home", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("home"))
	}))
	require.NoError(t, r.RegisterFunc("user", func(w http.ResponseWriter, r *http.Request) {
		id := dispatch.ParamUint(r, "id", 0)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "user %d", id)
	}))
	return r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_Dispatch(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(), testRegistry(t))
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/home")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/users/34")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user 34", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_UnknownHandler(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Routes[0].Handler = "missing"

	_, err := New(cfg, testRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown handler")
}

func TestServer_CustomNotFound(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.NotFound = &config.ResponseConfig{
		Status:      http.StatusNotFound,
		Body:        `{"error":"not found"}`,
		ContentType: "application/json",
	}

	s, err := New(cfg, testRegistry(t))
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestServer_MiddlewareRecovery(t *testing.T) {
	t.Parallel()

	r := testRegistry(t)
	require.NoError(t, r.RegisterFunc("boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	cfg := testConfig()
	cfg.Middleware.Recovery = true
	cfg.Routes = append(cfg.Routes, config.Route{
		Name:     "boom",
		Patterns: []string{"/boom"},
		Handler:  "boom",
	})

	s, err := New(cfg, r)
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Other routes still work through the chain.
	rec = do(t, s, http.MethodGet, "/home")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_MiddlewareRequestID(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Middleware.RequestID = true

	s, err := New(cfg, testRegistry(t))
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/home")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_Reload(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(), testRegistry(t))
	require.NoError(t, err)

	rec := do(t, s, http.MethodGet, "/home")
	require.Equal(t, http.StatusOK, rec.Code)

	updated := testConfig()
	updated.Routes = []config.Route{
		{
			Name:     "v2",
			Patterns: []string{"/v2"},
			Response: &config.ResponseConfig{Status: 200, Body: "v2"},
		},
	}
	require.NoError(t, s.Reload(updated))

	rec = do(t, s, http.MethodGet, "/home")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/v2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v2", rec.Body.String())
}

func TestServer_ReloadFailureKeepsOldRoutes(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(), testRegistry(t))
	require.NoError(t, err)

	bad := testConfig()
	bad.Routes[0].Handler = "missing"
	require.Error(t, s.Reload(bad))

	rec := do(t, s, http.MethodGet, "/home")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(), testRegistry(t))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	// Double start is rejected.
	require.Error(t, s.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	assert.False(t, s.IsRunning())

	// Stop on a stopped server is a no-op.
	require.NoError(t, s.Stop(stopCtx))
}
