package dispatch

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vyrodovalexey/avmux/internal/util"
	"github.com/vyrodovalexey/avmux/match"
	"github.com/vyrodovalexey/avmux/observability"
)

// Pattern is the matching service consumed by the route table. The
// pattern grammar is entirely the matcher's concern.
type Pattern interface {
	Match(path string) (bool, match.Params)
	String() string
}

// Compiler turns pattern text into a matchable Pattern. The default
// compiler is match.Compile; hosts may plug in their own grammar.
type Compiler func(pattern string) (Pattern, error)

// defaultCompiler adapts match.Compile to the Compiler signature.
func defaultCompiler(pattern string) (Pattern, error) {
	return match.Compile(pattern)
}

// mapping is one route table entry. Created during setup and never
// mutated afterwards; order in the table is match priority.
type mapping struct {
	name     string
	methods  MethodSet
	patterns []Pattern
	handler  http.Handler
}

// RouteTable is an ordered route table. Registration is fluent and
// single-threaded during setup; after setup the table is read-only and
// safe for arbitrarily many concurrent requests.
type RouteTable struct {
	mappings []*mapping
	notFound http.Handler
	compile  Compiler
	logger   observability.Logger
	err      error
}

// Option is a functional option for configuring a route table.
type Option func(*RouteTable)

// WithCompiler sets the pattern compiler.
func WithCompiler(c Compiler) Option {
	return func(t *RouteTable) {
		t.compile = c
	}
}

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger observability.Logger) Option {
	return func(t *RouteTable) {
		t.logger = logger
	}
}

// New creates an empty route table. The default not-found handler
// answers 404 with an empty body.
func New(opts ...Option) *RouteTable {
	t := &RouteTable{
		notFound: http.HandlerFunc(defaultNotFound),
		compile:  defaultCompiler,
		logger:   observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// defaultNotFound writes a 404 status with an empty body.
func defaultNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// AddMapping appends one mapping to the end of the table. An empty
// methods list registers the mapping for every known method. All
// configuration failures (unknown method, invalid pattern, nil handler,
// no patterns) are recorded as the table's sticky error, surfaced by
// Err.
func (t *RouteTable) AddMapping(methods, patterns []string, handler http.Handler) *RouteTable {
	return t.AddNamedMapping("", methods, patterns, handler)
}

// AddNamedMapping is AddMapping with a diagnostic name for the mapping.
func (t *RouteTable) AddNamedMapping(name string, methods, patterns []string, handler http.Handler) *RouteTable {
	if handler == nil {
		t.fail(util.NewConfigError("handler", "mapping handler must not be nil"))
		return t
	}
	if len(patterns) == 0 {
		t.fail(util.NewConfigError("patterns", "mapping must have at least one pattern"))
		return t
	}

	set := AllMethods()
	if len(methods) > 0 {
		encoded, err := EncodeMethods(methods)
		if err != nil {
			t.fail(err)
			return t
		}
		set = encoded
	}

	compiled := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := t.compile(raw)
		if err != nil {
			t.fail(util.WrapError(err, "compile pattern "+strconv.Quote(raw)))
			return t
		}
		compiled = append(compiled, p)
	}

	t.mappings = append(t.mappings, &mapping{
		name:     name,
		methods:  set,
		patterns: compiled,
		handler:  handler,
	})

	t.logger.Debug("route mapping registered",
		observability.String("name", name),
		observability.Any("methods", set.Methods()),
		observability.Any("patterns", patterns),
		observability.Int("priority", len(t.mappings)),
	)

	return t
}

// Handle registers a single-method, single-pattern mapping.
func (t *RouteTable) Handle(method, pattern string, handler http.Handler) *RouteTable {
	return t.AddMapping([]string{method}, []string{pattern}, handler)
}

// HandleFunc registers a single-method, single-pattern mapping with a
// handler function.
func (t *RouteTable) HandleFunc(method, pattern string, handler http.HandlerFunc) *RouteTable {
	return t.Handle(method, pattern, handler)
}

// SetNotFoundHandler replaces the fallback handler invoked when no
// mapping matches. A nil handler is an invalid-configuration error.
func (t *RouteTable) SetNotFoundHandler(handler http.Handler) *RouteTable {
	if handler == nil {
		t.fail(util.NewConfigError("notFound", "not-found handler must not be nil"))
		return t
	}
	t.notFound = handler
	return t
}

// Err returns the first configuration error recorded during setup, if
// any. A table with a non-nil Err must not be put into service.
func (t *RouteTable) Err() error {
	return t.err
}

// Len returns the number of registered mappings.
func (t *RouteTable) Len() int {
	return len(t.mappings)
}

// fail records the first configuration error.
func (t *RouteTable) fail(err error) {
	if t.err == nil {
		t.err = err
	}
	t.logger.Error("route table configuration error", observability.Error(err))
}

// ServeHTTP dispatches the request to the first mapping whose method
// set and pattern both match, in registration order, trying each
// mapping's patterns in listed order. Extracted path parameters
// (possibly empty) are attached to the request context before the
// handler runs; named mappings additionally record their name for
// downstream log enrichment and for upstream route carriers. If
// nothing matches, the not-found handler runs. Dispatch never fails:
// absence of a match is a normal outcome.
func (t *RouteTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	metrics := getTableMetrics()
	start := time.Now()

	bit := requestBit(r.Method)
	path := r.URL.Path

	for _, m := range t.mappings {
		if m.methods&bit == 0 {
			continue
		}
		for _, p := range m.patterns {
			ok, params := p.Match(path)
			if !ok {
				continue
			}

			metrics.matchDuration.Observe(time.Since(start).Seconds())
			metrics.dispatchedTotal.WithLabelValues(r.Method).Inc()

			ctx := contextWithParams(r.Context(), params)
			if m.name != "" {
				ctx = util.ContextWithRoute(ctx, m.name)
				util.RouteCarrierFromContext(ctx).Set(m.name)
			}
			m.handler.ServeHTTP(w, r.WithContext(ctx))
			return
		}
	}

	metrics.matchDuration.Observe(time.Since(start).Seconds())
	metrics.notFoundTotal.Inc()
	t.notFound.ServeHTTP(w, r)
}
