// Package match implements the path-pattern grammar used by the
// dispatch layer.
//
// A pattern is a sequence of /-separated segments:
//
//   - a literal segment matches itself exactly,
//   - ":name" captures one segment as a string parameter,
//   - ":name:type" captures one segment and constrains it to the given
//     type (string, int, long, ulong, bool, float),
//   - "*" matches exactly one segment without capturing,
//   - "**" matches any remaining path, including nothing, and must be
//     the final segment.
//
// Patterns are compiled once and are safe for concurrent use.
package match

import (
	"strconv"
	"strings"

	"github.com/vyrodovalexey/avmux/internal/util"
)

// Kind identifies the declared type of a path parameter.
type Kind int

// Supported parameter kinds.
const (
	KindString Kind = iota
	KindInt
	KindLong
	KindULong
	KindBool
	KindFloat
)

// String returns the grammar name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindULong:
		return "ulong"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// kindByName maps grammar type names to kinds.
var kindByName = map[string]Kind{
	"string": KindString,
	"int":    KindInt,
	"long":   KindLong,
	"ulong":  KindULong,
	"bool":   KindBool,
	"float":  KindFloat,
}

// Param is a single extracted path parameter. Value holds the raw
// matched segment; Kind records the type declared in the pattern.
type Param struct {
	Name  string
	Value string
	Kind  Kind
}

// Params is an ordered list of extracted path parameters, in pattern
// declaration order.
type Params []Param

// Get returns the raw value for name and whether it is present.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Lookup returns the full parameter for name and whether it is present.
func (p Params) Lookup(name string) (Param, bool) {
	for _, param := range p {
		if param.Name == name {
			return param, true
		}
	}
	return Param{}, false
}

// segmentKind tags the variants of a compiled pattern segment.
type segmentKind int

const (
	segLiteral segmentKind = iota
	segParam
	segWildcard
	segWildcardTail
)

// segment is one compiled pattern segment.
type segment struct {
	kind      segmentKind
	literal   string
	paramName string
	paramKind Kind
}

// Pattern is a compiled path pattern.
type Pattern struct {
	raw      string
	segments []segment
	// tail is true when the pattern ends in "**" and may consume any
	// number of trailing path segments.
	tail bool
	// paramCount sizes the Params allocation per match.
	paramCount int
}

// Compile parses and validates a pattern. Validation is eager: an
// invalid pattern is rejected here, at registration time, not at first
// match.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" || pattern[0] != '/' {
		return nil, util.NewConfigError("pattern", "pattern must begin with '/': "+strconv.Quote(pattern))
	}

	parts := splitPath(pattern)
	p := &Pattern{raw: pattern, segments: make([]segment, 0, len(parts))}

	for i, part := range parts {
		seg, err := compileSegment(pattern, part)
		if err != nil {
			return nil, err
		}
		if seg.kind == segWildcardTail {
			if i != len(parts)-1 {
				return nil, util.NewConfigError("pattern", "'**' must be the final segment in "+strconv.Quote(pattern))
			}
			p.tail = true
			continue
		}
		if seg.kind == segParam {
			p.paramCount++
		}
		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for
// statically known patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// compileSegment parses a single pattern segment.
func compileSegment(pattern, part string) (segment, error) {
	switch {
	case part == "*":
		return segment{kind: segWildcard}, nil

	case part == "**":
		return segment{kind: segWildcardTail}, nil

	case strings.HasPrefix(part, ":"):
		name := part[1:]
		kind := KindString
		if idx := strings.IndexByte(name, ':'); idx >= 0 {
			typeName := name[idx+1:]
			name = name[:idx]
			k, ok := kindByName[typeName]
			if !ok {
				return segment{}, util.NewConfigError("pattern",
					"unknown parameter type "+strconv.Quote(typeName)+" in "+strconv.Quote(pattern))
			}
			kind = k
		}
		if name == "" {
			return segment{}, util.NewConfigError("pattern", "parameter segment without a name in "+strconv.Quote(pattern))
		}
		return segment{kind: segParam, paramName: name, paramKind: kind}, nil

	default:
		return segment{kind: segLiteral, literal: part}, nil
	}
}

// Match reports whether path matches the pattern and returns the
// extracted parameters in declaration order. A typed parameter segment
// only matches a path segment parseable as its declared type.
func (p *Pattern) Match(path string) (bool, Params) {
	parts := splitPath(path)

	if p.tail {
		if len(parts) < len(p.segments) {
			return false, nil
		}
	} else if len(parts) != len(p.segments) {
		return false, nil
	}

	var params Params
	if p.paramCount > 0 {
		params = make(Params, 0, p.paramCount)
	}

	for i, seg := range p.segments {
		part := parts[i]
		switch seg.kind {
		case segLiteral:
			if part != seg.literal {
				return false, nil
			}
		case segWildcard:
			if part == "" {
				return false, nil
			}
		case segParam:
			if part == "" || !validKind(part, seg.paramKind) {
				return false, nil
			}
			params = append(params, Param{Name: seg.paramName, Value: part, Kind: seg.paramKind})
		}
	}

	return true, params
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// splitPath splits a path into its non-root segments. "/" yields an
// empty slice; a trailing slash yields a trailing empty segment so that
// "/users/" and "/users" remain distinct.
func splitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// validKind reports whether raw parses as the declared parameter kind.
func validKind(raw string, kind Kind) bool {
	switch kind {
	case KindInt:
		_, err := strconv.ParseInt(raw, 10, 32)
		return err == nil
	case KindLong:
		_, err := strconv.ParseInt(raw, 10, 64)
		return err == nil
	case KindULong:
		_, err := strconv.ParseUint(raw, 10, 64)
		return err == nil
	case KindBool:
		_, err := strconv.ParseBool(raw)
		return err == nil
	case KindFloat:
		_, err := strconv.ParseFloat(raw, 64)
		return err == nil
	default:
		return true
	}
}
