package httpcore

import "strings"

// RouteEntry binds a method and path to a handler. Args carries the static
// arguments the handler was bound with, kept for diagnostics; RequiresAuth
// marks the entry for the server's auth wrapper.
type RouteEntry struct {
	Method       string
	Path         string
	Handler      Handler
	Args         map[string]any
	RequiresAuth bool
}

// Router is the route table: method -> path -> entry. It is populated once
// at startup and read-only while the server accepts connections, so lookups
// take no locks.
//
// Matching is exact: method comparison is case-insensitive (normalized to
// upper case at registration and lookup), path comparison is case-sensitive
// with no pattern matching and no trailing-slash normalization.
type Router struct {
	routes map[string]map[string]*RouteEntry
}

// NewRouter creates an empty route table.
func NewRouter() *Router {
	return &Router{routes: make(map[string]map[string]*RouteEntry)}
}

// Register adds an entry to the table. Registering the same (method, path)
// twice overwrites the earlier entry, last write wins.
func (r *Router) Register(entry RouteEntry) {
	method := strings.ToUpper(entry.Method)
	entry.Method = method

	byPath, ok := r.routes[method]
	if !ok {
		byPath = make(map[string]*RouteEntry)
		r.routes[method] = byPath
	}
	byPath[entry.Path] = &entry
}

// Resolve looks up the entry for a request. The second return value is
// false when no route matches; the caller turns that into a 404.
func (r *Router) Resolve(method, path string) (*RouteEntry, bool) {
	byPath, ok := r.routes[strings.ToUpper(method)]
	if !ok {
		return nil, false
	}
	entry, ok := byPath[path]
	return entry, ok
}

// Len returns the number of registered entries.
func (r *Router) Len() int {
	n := 0
	for _, byPath := range r.routes {
		n += len(byPath)
	}
	return n
}

// Entries returns all registered entries. Order is unspecified; used for
// startup diagnostics only.
func (r *Router) Entries() []*RouteEntry {
	out := make([]*RouteEntry, 0, r.Len())
	for _, byPath := range r.routes {
		for _, e := range byPath {
			out = append(out, e)
		}
	}
	return out
}
