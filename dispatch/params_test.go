package dispatch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/match"
)

// paramRequest returns a request carrying the given path parameters.
func paramRequest(params match.Params) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(contextWithParams(r.Context(), params))
}

func TestParamsFromRequest_Empty(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ParamsFromRequest(r))
}

func TestParamsFromRequest(t *testing.T) {
	t.Parallel()

	r := paramRequest(match.Params{{Name: "id", Value: "34", Kind: match.KindULong}})

	params := ParamsFromRequest(r)
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0].Name)
}

func TestParamHelpers_Defaults(t *testing.T) {
	t.Parallel()

	r := paramRequest(match.Params{
		{Name: "id", Value: "34"},
		{Name: "name", Value: "alice"},
		{Name: "bad", Value: "not-a-number"},
	})

	assert.Equal(t, uint64(34), ParamUint(r, "id", 0))
	assert.Equal(t, int64(34), ParamInt(r, "id", 0))
	assert.Equal(t, "alice", ParamString(r, "name", ""))

	// Absent name resolves to the default.
	assert.Equal(t, uint64(7), ParamUint(r, "missing", 7))
	assert.Equal(t, "fallback", ParamString(r, "missing", "fallback"))

	// Coercion failure resolves to the default, not an error.
	assert.Equal(t, uint64(9), ParamUint(r, "bad", 9))
	assert.Equal(t, int64(-1), ParamInt(r, "bad", -1))
}

func TestParamBoolAndFloat(t *testing.T) {
	t.Parallel()

	r := paramRequest(match.Params{
		{Name: "active", Value: "true"},
		{Name: "score", Value: "2.5"},
	})

	assert.True(t, ParamBool(r, "active", false))
	assert.False(t, ParamBool(r, "missing", false))
	assert.InDelta(t, 2.5, ParamFloat(r, "score", 0), 1e-9)
	assert.InDelta(t, 1.0, ParamFloat(r, "missing", 1.0), 1e-9)
}

func TestLookupParam_Strict(t *testing.T) {
	t.Parallel()

	r := paramRequest(match.Params{
		{Name: "id", Value: "34"},
		{Name: "bad", Value: "abc"},
	})

	v, err := LookupParamUint(r, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(34), v)

	s, err := LookupParamString(r, "id")
	require.NoError(t, err)
	assert.Equal(t, "34", s)

	_, err = LookupParamUint(r, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = LookupParamUint(r, "bad")
	require.Error(t, err)
	var pe *util.ParamError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.Missing)
	assert.Equal(t, "ulong", pe.Type)

	_, err = LookupParamInt(r, "bad")
	assert.Error(t, err)
}
