package auth

import (
	"time"
)

// expiryBuffer refreshes tokens slightly before the provider would reject
// them, so a token handed to a caller stays valid for the call it makes.
const expiryBuffer = 5 * time.Minute

// TokenBundle is one set of provider tokens. It is replaced wholesale on
// refresh, never mutated field by field.
type TokenBundle struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	TokenType    string     `json:"token_type"`
}

// IsExpired reports whether the access token is inside the refresh window.
// A bundle without an expiry never expires.
func (t TokenBundle) IsExpired(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return !now.Before(t.ExpiresAt.Add(-expiryBuffer))
}

// NeedsRefresh reports whether the bundle is expired and can be repaired.
// An expired bundle without a refresh token means the session is lost.
func (t TokenBundle) NeedsRefresh(now time.Time) bool {
	return t.IsExpired(now) && t.RefreshToken != ""
}

// StoredSession is the single durable record representing a signed-in user.
type StoredSession struct {
	Tokens   TokenBundle `json:"tokens"`
	UserID   string      `json:"user_id"`
	GoogleID string      `json:"google_id"`
	Email    string      `json:"email"`
}
