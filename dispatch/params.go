package dispatch

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/match"
)

// Params is the ordered list of path parameters extracted for a
// request.
type Params = match.Params

// paramsCtxKey is the single reserved request-context key under which
// the route table attaches extracted path parameters. The key type is
// unexported, so no other collaborator can produce or overwrite the
// entry.
type paramsCtxKey struct{}

// contextWithParams attaches the match result to the request context.
func contextWithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, paramsCtxKey{}, params)
}

// ParamsFromRequest returns the path parameters extracted when the
// request was dispatched, or an empty list if no mapping matched. It is
// a pure read with no side effects.
func ParamsFromRequest(r *http.Request) Params {
	if params, ok := r.Context().Value(paramsCtxKey{}).(Params); ok {
		return params
	}
	return nil
}

// ParamString returns the named parameter as a string, or def if it is
// absent.
func ParamString(r *http.Request, name, def string) string {
	if v, ok := ParamsFromRequest(r).Get(name); ok {
		return v
	}
	return def
}

// ParamInt returns the named parameter parsed as a signed integer, or
// def if it is absent or unparseable.
func ParamInt(r *http.Request, name string, def int64) int64 {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// ParamUint returns the named parameter parsed as an unsigned integer,
// or def if it is absent or unparseable.
func ParamUint(r *http.Request, name string, def uint64) uint64 {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// ParamBool returns the named parameter parsed as a boolean, or def if
// it is absent or unparseable.
func ParamBool(r *http.Request, name string, def bool) bool {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

// ParamFloat returns the named parameter parsed as a float, or def if
// it is absent or unparseable.
func ParamFloat(r *http.Request, name string, def float64) float64 {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return parsed
}

// LookupParamString returns the named parameter, or a ParamError if it
// is absent. Strict counterpart to ParamString.
func LookupParamString(r *http.Request, name string) (string, error) {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return "", &util.ParamError{Name: name, Missing: true}
	}
	return v, nil
}

// LookupParamInt returns the named parameter parsed as a signed
// integer, or a ParamError on absence or coercion failure.
func LookupParamInt(r *http.Request, name string) (int64, error) {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return 0, &util.ParamError{Name: name, Missing: true}
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &util.ParamError{Name: name, Value: v, Type: "long", Cause: err}
	}
	return parsed, nil
}

// LookupParamUint returns the named parameter parsed as an unsigned
// integer, or a ParamError on absence or coercion failure.
func LookupParamUint(r *http.Request, name string) (uint64, error) {
	v, ok := ParamsFromRequest(r).Get(name)
	if !ok {
		return 0, &util.ParamError{Name: name, Missing: true}
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, &util.ParamError{Name: name, Value: v, Type: "ulong", Cause: err}
	}
	return parsed, nil
}
