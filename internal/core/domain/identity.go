package domain

import "time"

// Identity is the authenticated principal extracted from a verified
// bearer token. It carries only what handlers need; the full User record
// stays in storage.
type Identity struct {
	// UserID is the account ID (whus-...).
	UserID string `json:"user_id"`

	// Username is the login name the token was issued for.
	Username string `json:"username"`

	// Role is the permission tier at issue time.
	Role Role `json:"role"`

	// ExpiresAt is the token expiry.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the identity's token has passed its expiry.
func (i *Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
