package dispatch

import (
	"net/http"
	"strings"

	"github.com/vyrodovalexey/avmux/internal/util"
)

// MethodSet encodes a set of HTTP methods as a bit vector, one distinct
// bit per method, for O(1) membership tests.
type MethodSet uint16

// methodOrder lists every supported method in canonical order. The bit
// for methodOrder[i] is 1 << i.
var methodOrder = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// methodBits is the exhaustive method-to-bit table. Every standard
// method maps to a distinct non-zero bit.
var methodBits = func() map[string]MethodSet {
	bits := make(map[string]MethodSet, len(methodOrder))
	for i, m := range methodOrder {
		bits[m] = 1 << i
	}
	return bits
}()

// MethodBit returns the bit for a single method. An unmapped method is
// a configuration-time error, never silently encoded as the zero mask.
func MethodBit(method string) (MethodSet, error) {
	bit, ok := methodBits[strings.ToUpper(method)]
	if !ok {
		return 0, util.NewConfigError("method", "unknown HTTP method "+method)
	}
	return bit, nil
}

// EncodeMethods returns the union of the bits for each method.
func EncodeMethods(methods []string) (MethodSet, error) {
	var set MethodSet
	for _, m := range methods {
		bit, err := MethodBit(m)
		if err != nil {
			return 0, err
		}
		set |= bit
	}
	return set, nil
}

// AllMethods returns a mask with every known method's bit set.
func AllMethods() MethodSet {
	var set MethodSet
	for _, bit := range methodBits {
		set |= bit
	}
	return set
}

// Contains reports whether the set includes the given method. Unknown
// methods are contained in no set.
func (s MethodSet) Contains(method string) bool {
	return s&requestBit(method) != 0
}

// Methods returns the member methods in canonical order.
func (s MethodSet) Methods() []string {
	var methods []string
	for i, m := range methodOrder {
		if s&(1<<i) != 0 {
			methods = append(methods, m)
		}
	}
	return methods
}

// requestBit returns the bit for a request's method, or the zero mask
// for an unknown method. At request time an unknown method is a normal
// no-match outcome, not an error.
func requestBit(method string) MethodSet {
	return methodBits[strings.ToUpper(method)]
}
