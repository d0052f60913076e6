package models

import "time"

// TokenPair bundles a short-lived access token and the opaque refresh code
// that replaces the user's previous one. Transient: only the refresh portion
// is persisted, as a RefreshToken row.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// ClientToken is the access token minted for a machine client. Clients hold
// no refresh token; they re-present their secret to authenticate again.
type ClientToken struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
}
