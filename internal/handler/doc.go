// Package handler contains the route handlers served by WireHTTP.
//
// Handlers are constructed through a fixed name registry so the route
// configuration file can refer to them declaratively. This package
// contains:
//
//   - registry.go: handler name -> factory mapping
//   - auth.go: register_user, login_user, get_user_profile
//   - api.go: get_data, post_data, health
//   - static.go: serve_static_file with a watched content cache
//   - metrics.go: Prometheus text exposition
package handler
