package middleware

import (
	"errors"
	"strings"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

// TokenVerifier validates a bearer token and returns the identity it
// encodes. Implemented by service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Identity, error)
}

// Auth returns a middleware that enforces bearer token authentication.
// On success the verified identity is attached to the request; on
// failure a 401 is returned without calling the next handler.
func Auth(verifier TokenVerifier) httpcore.Middleware {
	return func(next httpcore.Handler) httpcore.Handler {
		return func(req *httpcore.Request) (*httpcore.Response, error) {
			header, ok := req.Headers.Lookup("Authorization")
			if !ok || header == "" {
				return httpcore.Text(401, "authorization header missing"), nil
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return httpcore.Text(401, "invalid authorization header"), nil
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					return httpcore.Text(401, "token has expired"), nil
				default:
					return httpcore.Text(401, "invalid token"), nil
				}
			}

			req.Principal = identity
			return next(req)
		}
	}
}

// IdentityFrom extracts the verified identity attached by Auth.
func IdentityFrom(req *httpcore.Request) (*domain.Identity, bool) {
	identity, ok := req.Principal.(*domain.Identity)
	return identity, ok
}
