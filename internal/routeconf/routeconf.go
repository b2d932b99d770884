// Package routeconf loads the declarative route table for WireHTTP.
//
// Routes live in a YAML file:
//
//	routes:
//	  - method: GET
//	    path: /
//	    handler: serve_static_file
//	    args:
//	      filepath: index.html
//	  - method: GET
//	    path: /auth/profile
//	    handler: get_user_profile
//	    requires_auth: true
//
// Args accept a mapping, a sequence (positional), or a single scalar.
// Malformed entries are skipped with a warning; loading never fails on
// a bad entry, only on an unreadable file.
package routeconf

import (
	"fmt"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yndnr/wirehttp-go/internal/handler"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

// Entry is one route declaration.
type Entry struct {
	Method       string
	Path         string
	Handler      string
	Args         map[string]any
	RequiresAuth bool
}

// BuildFunc constructs a handler by registry name. cmd wires this to
// handler.New with the process-wide dependencies.
type BuildFunc func(name string, args map[string]any) (httpcore.Handler, error)

// Load reads the route file and returns its entries. Entries missing
// method, path, or handler are dropped with a warning.
func Load(path string, logger *slog.Logger) ([]Entry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load routes file %s: %w", path, err)
	}

	raw, ok := k.Get("routes").([]any)
	if !ok {
		return nil, fmt.Errorf("routes file %s: 'routes' must be a list", path)
	}

	var entries []Entry
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			logger.Warn("skipping malformed route entry", "index", i)
			continue
		}

		entry := Entry{
			Method:       stringField(m, "method"),
			Path:         stringField(m, "path"),
			Handler:      stringField(m, "handler"),
			Args:         normalizeArgs(m["args"]),
			RequiresAuth: boolField(m, "requires_auth"),
		}
		if entry.Method == "" || entry.Path == "" || entry.Handler == "" {
			logger.Warn("skipping malformed route entry",
				"index", i, "method", entry.Method, "path", entry.Path, "handler", entry.Handler)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Apply registers the entries on the router. Entries whose handler
// cannot be built are skipped with a warning.
func Apply(router *httpcore.Router, entries []Entry, build BuildFunc, logger *slog.Logger) int {
	applied := 0
	for _, entry := range entries {
		h, err := build(entry.Handler, entry.Args)
		if err != nil {
			logger.Warn("skipping route",
				"method", entry.Method, "path", entry.Path,
				"handler", entry.Handler, "error", err)
			continue
		}

		router.Register(httpcore.RouteEntry{
			Method:       entry.Method,
			Path:         entry.Path,
			Handler:      h,
			Args:         entry.Args,
			RequiresAuth: entry.RequiresAuth,
		})
		applied++
	}
	return applied
}

// normalizeArgs folds the three accepted args shapes into a map.
// Sequences and scalars land under handler.PositionalArgsKey.
func normalizeArgs(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case []any:
		return map[string]any{handler.PositionalArgsKey: v}
	default:
		return map[string]any{handler.PositionalArgsKey: []any{v}}
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
