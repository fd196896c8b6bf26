// Package dispatch maps incoming HTTP requests to application-supplied
// handlers.
//
// The core type is RouteTable: an ordered list of route mappings, each
// combining a bit-encoded method set, one or more path patterns, and a
// handler. Dispatch scans mappings in registration order and delegates
// to the first one whose method set and pattern both match; requests
// that match nothing resolve to a configurable not-found handler.
// Matching is a total function over any request and never fails.
//
// # Features
//
//   - Bit-packed method sets with O(1) membership tests
//   - First-registered, first-listed-pattern match priority
//   - Path parameter extraction with typed retrieval helpers
//   - Configurable not-found handler
//   - Pluggable pattern compiler
//   - Immutable after setup, safe for concurrent dispatch
//
// # Usage
//
// Build a table during setup, check Err, then serve:
//
//	table := dispatch.New().
//	    Handle(http.MethodGet, "/users/:id:ulong", usersHandler).
//	    AddMapping([]string{"GET", "POST"}, []string{"/items", "/legacy/items"}, itemsHandler)
//	if err := table.Err(); err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(addr, table)
package dispatch
