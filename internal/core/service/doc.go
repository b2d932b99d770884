// Package service provides domain services for WireHTTP.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - AuthService: user registration, login, token issue and verification
//
// Services are stateless and thread-safe.
package service
