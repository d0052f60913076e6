// Package auth implements the token minter: HS256 access tokens plus opaque
// refresh codes. The rest of the server treats it as an opaque collaborator
// behind the services.TokenMinter interface.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mlevshin/authgate/internal/common"
	"github.com/mlevshin/authgate/internal/server/models"
)

// refreshCodeBytes is the entropy of an opaque refresh code; the hex string
// is twice as long.
const refreshCodeBytes = 32

// Claims carries the authenticated principal. Exactly one of UserID/ClientID
// is set, depending on which flow minted the token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid,omitempty"`
	ClientID string `json:"cid,omitempty"`
}

// Minter issues signed access tokens and random refresh codes.
type Minter struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

// NewMinter constructs a Minter signing with the given HMAC secret.
func NewMinter(secret []byte, accessValidity, refreshValidity time.Duration) *Minter {
	return &Minter{
		secret:          secret,
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// MintUserTokens returns a fresh access/refresh pair for the user.
func (m *Minter) MintUserTokens(userID string) (*models.TokenPair, error) {
	now := time.Now()
	accessExpires := now.Add(m.accessValidity)

	access, err := m.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExpires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("error signing access token: %w", err)
	}

	refresh, err := common.MakeRandHexString(refreshCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh code: %w", err)
	}

	return &models.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExpires,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: now.Add(m.refreshValidity),
	}, nil
}

// MintClientToken returns an access token for a machine client. No refresh
// code: clients authenticate again with their secret.
func (m *Minter) MintClientToken(clientID string) (*models.ClientToken, error) {
	now := time.Now()
	expires := now.Add(m.accessValidity)

	access, err := m.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ClientID: clientID,
	})
	if err != nil {
		return nil, fmt.Errorf("error signing client token: %w", err)
	}

	return &models.ClientToken{
		AccessToken:          access,
		AccessTokenExpiresAt: expires,
	}, nil
}

func (m *Minter) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseClaims validates a signed token and returns its claims. Used by token
// consumers and tests; the authentication flows themselves never parse
// access tokens.
func ParseClaims(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, common.ErrorNotFound
	}

	return claims, nil
}
