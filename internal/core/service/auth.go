// Package service provides domain services for WireHTTP.
//
// AuthService handles user registration, password verification, and
// bearer token issue and verification.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
)

// UserRepository defines the storage interface for user operations.
type UserRepository interface {
	// Get retrieves a user by username.
	Get(ctx context.Context, username string) (*domain.User, error)

	// Create creates a new user. Returns domain.ErrUserExists if the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Delete deletes a user by username.
	Delete(ctx context.Context, username string) error

	// List retrieves all users.
	List(ctx context.Context) ([]*domain.User, error)
}

// AuthService handles user accounts and bearer tokens.
type AuthService struct {
	repo       UserRepository
	signingKey []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// AuthServiceConfig holds configuration for AuthService.
type AuthServiceConfig struct {
	// SigningKey is the HMAC secret used to sign tokens.
	SigningKey []byte

	// TokenTTL is the token lifetime (default: 30m).
	TokenTTL time.Duration

	// BcryptCost is the bcrypt work factor (default: bcrypt.DefaultCost).
	BcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserRepository, cfg *AuthServiceConfig) *AuthService {
	ttl := 30 * time.Minute
	cost := bcrypt.DefaultCost
	var key []byte
	if cfg != nil {
		if cfg.TokenTTL > 0 {
			ttl = cfg.TokenTTL
		}
		if cfg.BcryptCost >= bcrypt.MinCost {
			cost = cfg.BcryptCost
		}
		key = cfg.SigningKey
	}
	return &AuthService{
		repo:       repo,
		signingKey: key,
		tokenTTL:   ttl,
		bcryptCost: cost,
		now:        time.Now,
	}
}

// HashPassword hashes a plaintext password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", domain.ErrInternalServer.WithCause(err)
	}
	return string(hash), nil
}

// RegisterRequest contains parameters for creating an account.
type RegisterRequest struct {
	Username string
	Password string
}

// Register creates a new user account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	if err := domain.ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(req.Username, hash)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if domain.IsDomainError(err, domain.ErrUserExists.Code) {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}
	return user, nil
}

// LoginRequest contains credentials for a login attempt.
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse contains the issued token.
type LoginResponse struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and issues a signed bearer token.
// A missing user and a wrong password both map to ErrInvalidCredentials
// so login failures do not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.Get(ctx, req.Username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrUserNotFound.Code) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// tokenClaims are the registered and private claims carried by a token.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// issueToken signs an HS256 token for the user.
func (s *AuthService) issueToken(user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := tokenClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, domain.ErrInternalServer.WithCause(err)
	}
	return signed, expiresAt, nil
}

// VerifyToken validates a bearer token and returns the identity it
// encodes. Expired tokens map to ErrTokenExpired; all other failures map
// to ErrTokenInvalid.
func (s *AuthService) VerifyToken(tokenString string) (*domain.Identity, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid.WithDetails("unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid.WithCause(err)
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	identity := &domain.Identity{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     domain.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Profile loads the stored account for an authenticated identity.
func (s *AuthService) Profile(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	user, err := s.repo.Get(ctx, identity.Username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrUserNotFound.Code) {
			return nil, err
		}
		return nil, domain.ErrStorageError.WithCause(err)
	}
	return user, nil
}
