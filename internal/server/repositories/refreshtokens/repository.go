// Package refreshtokens declares the repository contract for the single
// active refresh token kept per user.
package refreshtokens

import (
	"context"
	"time"

	"github.com/mlevshin/authgate/internal/server/models"
)

// Repository defines operations for issuing, rotating, and revoking refresh
// tokens.
type Repository interface {
	// FindByUser returns the user's active refresh-token row, or
	// common.ErrorNotFound.
	FindByUser(ctx context.Context, userID string) (*models.RefreshToken, error)

	// FindByCode looks up a refresh token by its opaque code, or
	// common.ErrorNotFound.
	FindByCode(ctx context.Context, code string) (*models.RefreshToken, error)

	// Upsert stores code/expiresAt as the user's refresh token: it inserts a
	// row when the user has none and overwrites the existing row otherwise,
	// in a single statement. The user_id uniqueness constraint makes the
	// operation safe under concurrent logins for the same user.
	Upsert(ctx context.Context, userID string, code string, expiresAt time.Time) error

	// Delete removes a refresh token by its code.
	Delete(ctx context.Context, code string) error
}
