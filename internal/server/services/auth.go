// Package services contains server-side business logic. This file implements
// AuthService, the sole arbiter of login, refresh, and revoke outcomes and
// the only component that mutates refresh-token state.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mlevshin/authgate/internal/common"
	"github.com/mlevshin/authgate/internal/dbx"
	"github.com/mlevshin/authgate/internal/server/clients"
	"github.com/mlevshin/authgate/internal/server/models"
	"github.com/mlevshin/authgate/internal/server/repositories/repomanager"
)

// CredentialVerifier checks a presented password against a stored hash.
// Kept narrow so the core never depends on the hashing scheme.
type CredentialVerifier interface {
	Verify(hash, password string) bool
}

// TokenMinter produces signed access tokens and opaque refresh codes for an
// authenticated principal.
type TokenMinter interface {
	MintUserTokens(userID string) (*models.TokenPair, error)
	MintClientToken(clientID string) (*models.ClientToken, error)
}

// AuthService provides the authentication operations:
//   - Login: verify user credentials and mint tokens
//   - LoginByClient: authenticate a machine client against the registry
//   - RefreshToken: rotate a refresh code and mint a new pair
//   - Revoke: invalidate a refresh code
type AuthService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	registry *clients.Registry
	verifier CredentialVerifier
	minter   TokenMinter
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(db *sql.DB, repos repomanager.RepositoryManager, registry *clients.Registry, verifier CredentialVerifier, minter TokenMinter) *AuthService {
	return &AuthService{
		db:       db,
		repos:    repos,
		registry: registry,
		verifier: verifier,
		minter:   minter,
	}
}

// Login verifies email/password and, on success, mints a TokenPair and makes
// its refresh code the user's single active one. Unknown email and wrong
// password both return ErrInvalidCredentials, so a caller cannot enumerate
// registered emails. Empty inputs are treated the same way rather than as a
// distinct validation failure. Nothing is written on any failure path.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}
	if !s.verifier.Verify(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.minter.MintUserTokens(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// One commit per request: the upsert keeps at most one active row per
	// user even when two logins for the same user race on the first insert.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.RefreshTokens(tx).Upsert(ctx, user.ID, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	}); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return pair, nil
}

// LoginByClient authenticates a machine client by exact match on id and
// secret. Purely synchronous: client tokens are not persisted and carry no
// refresh code.
func (s *AuthService) LoginByClient(ctx context.Context, clientID, clientSecret string) (*models.ClientToken, error) {
	client := s.registry.Lookup(clientID, clientSecret)
	if client == nil {
		return nil, common.ErrClientNotFound
	}

	token, err := s.minter.MintClientToken(client.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return token, nil
}

// RefreshToken exchanges a refresh code for a fresh TokenPair, overwriting
// the stored row in place. An expired code is reported exactly like an
// unknown one. The old code is invalid as soon as the transaction commits.
func (s *AuthService) RefreshToken(ctx context.Context, code string) (*models.TokenPair, error) {
	if code == "" {
		return nil, common.ErrRefreshTokenNotFound
	}

	stored, err := s.repos.RefreshTokens(s.db).FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrRefreshTokenNotFound
	}

	// The owning user may have been deleted after the token was issued.
	user, err := s.repos.Users(s.db).GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving token owner: %w", err)
	}

	pair, err := s.minter.MintUserTokens(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.RefreshTokens(tx).Upsert(ctx, user.ID, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	}); err != nil {
		return nil, fmt.Errorf("error rotating refresh token: %w", err)
	}

	return pair, nil
}

// Revoke deletes the refresh-token row for the given code. Revoking an
// unknown (or already revoked) code reports ErrRefreshTokenNotFound; the
// second revoke of the same code therefore fails cleanly instead of
// reporting success.
func (s *AuthService) Revoke(ctx context.Context, code string) error {
	if code == "" {
		return common.ErrRefreshTokenNotFound
	}

	stored, err := s.repos.RefreshTokens(s.db).FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrRefreshTokenNotFound
		}
		return fmt.Errorf("error searching refresh token: %w", err)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.RefreshTokens(tx).Delete(ctx, stored.Code)
	}); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}

	return nil
}
