package handler

import (
	"fmt"
	"log/slog"

	"github.com/yndnr/wirehttp-go/internal/core/service"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/internal/telemetry/metric"
)

// Deps carries the shared dependencies handler factories draw from.
type Deps struct {
	Auth    *service.AuthService
	Metrics *metric.Registry
	Static  *StaticServer
	Logger  *slog.Logger
}

// Factory builds a handler from shared dependencies and the static
// arguments bound to the route entry.
type Factory func(deps *Deps, args map[string]any) (httpcore.Handler, error)

// factories is the fixed handler name registry. Route configuration may
// only reference names listed here.
var factories = map[string]Factory{
	"serve_static_file": newStaticFileHandler,
	"get_data":          newGetDataHandler,
	"post_data":         newPostDataHandler,
	"register_user":     newRegisterUserHandler,
	"login_user":        newLoginUserHandler,
	"get_user_profile":  newUserProfileHandler,
	"metrics":           newMetricsHandler,
	"health":            newHealthHandler,
}

// IsKnown reports whether name is a registered handler name.
func IsKnown(name string) bool {
	_, ok := factories[name]
	return ok
}

// Names returns all registered handler names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// New builds the named handler.
func New(name string, deps *Deps, args map[string]any) (httpcore.Handler, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown handler %q", name)
	}
	return factory(deps, args)
}
