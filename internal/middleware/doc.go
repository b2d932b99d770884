// Package middleware provides the request middleware stack for WireHTTP.
//
// Middlewares wrap httpcore handlers and compose with httpcore.Chain.
// This package contains:
//
//   - RequestID: assigns a ULID to each request
//   - AccessLog: structured per-request logging
//   - RateLimit: per-client token bucket limiting
//   - Auth: bearer token verification for protected routes
package middleware
