package domain

import (
	"crypto/rand"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
)

// User constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit

	// UserIDPrefix is the prefix for user IDs.
	UserIDPrefix = "whus-"
)

// Role names a coarse permission tier attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the defined roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
//
// PasswordHash is a bcrypt digest; the plaintext password is never stored.
type User struct {
	// ID is the unique identifier for the user.
	// Format: whus-{ulid_lowercase}, 31 characters total.
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string `json:"password_hash"`

	// Role is the permission tier.
	Role Role `json:"role"`

	// CreatedAt is the account creation timestamp (Unix milliseconds).
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a new User with a generated ID and the default role.
// The caller supplies the already-hashed password.
func NewUser(username, passwordHash string) (*User, error) {
	id, err := GenerateUserID()
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UnixMilli(),
	}, nil
}

// GenerateUserID generates a new user ID using ULID.
// Format: whus-{ulid_lowercase}, 31 characters total.
func GenerateUserID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return UserIDPrefix + strings.ToLower(id.String()), nil
}

// ValidateUsername checks username format constraints.
// Usernames are 3-64 characters of letters, digits, '_', '-', or '.'.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return ErrInvalidArgument.WithDetails("username must be 3-64 characters")
	}
	for _, r := range username {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
		case r == '_', r == '-', r == '.':
		default:
			return ErrInvalidArgument.WithDetails("username contains invalid characters")
		}
	}
	return nil
}

// ValidatePassword checks password length constraints.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrInvalidArgument.WithDetails("password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return ErrInvalidArgument.WithDetails("password too long")
	}
	return nil
}
