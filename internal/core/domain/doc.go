// Package domain defines the core domain models for WireHTTP.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - User: Registered account with a bcrypt password hash
//   - Identity: Authenticated principal extracted from a bearer token
//   - Errors: Domain-specific error definitions with structured codes
package domain
