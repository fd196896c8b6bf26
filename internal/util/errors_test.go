package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("routes[0].methods", "unknown method FROB")
	assert.Contains(t, err.Error(), "routes[0].methods")
	assert.Contains(t, err.Error(), "unknown method FROB")
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestConfigError_NoField(t *testing.T) {
	t.Parallel()

	err := NewConfigError("", "not found handler must not be nil")
	assert.Equal(t, "config error: not found handler must not be nil", err.Error())
}

func TestConfigError_WithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewConfigErrorWithCause("patterns", "compile failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("invalid route")
	err.AddField("name", "must not be empty")

	assert.Contains(t, err.Error(), "invalid route")
	assert.Contains(t, err.Error(), "name")
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestRouteNotFoundError(t *testing.T) {
	t.Parallel()

	err := NewRouteNotFoundError("GET", "/missing")
	assert.Equal(t, "no route found for GET /missing", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParamError(t *testing.T) {
	t.Parallel()

	missing := &ParamError{Name: "id", Missing: true}
	assert.ErrorIs(t, missing, ErrNotFound)
	assert.Contains(t, missing.Error(), `"id"`)

	parse := &ParamError{Name: "id", Value: "abc", Type: "ulong"}
	assert.NotErrorIs(t, parse, ErrNotFound)
	assert.Contains(t, parse.Error(), "ulong")
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, WrapError(nil, "context"))

	base := errors.New("base")
	wrapped := WrapError(base, "context")
	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "context")
}
