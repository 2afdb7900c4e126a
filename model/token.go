// file: model/token.go

package model

import "time"

// RefreshToken is the stored session record binding a refresh secret to a
// user and its validity window. It lives only in the cache, never in the
// database; its cache entries carry a TTL equal to the time remaining
// until ExpiresAt.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
}

// Usable reports whether the session may still be exchanged for a new
// token pair at the given instant.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.IsActive && now.Before(t.ExpiresAt)
}

// TokenPair is what a successful login or refresh hands back: a signed
// access token for the Authorization header and the refresh secret that
// goes into the auth cookie.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

// ActiveSession is the client-facing view of a session. The secret stays
// server-side.
type ActiveSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
