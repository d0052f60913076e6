// Package common defines shared constants and sentinel errors used across
// the authgate components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Authentication errors. ErrInvalidCredentials is deliberately the same
	// whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrClientNotFound     = errors.New("client not found")

	// Refresh-token lifecycle errors. An expired code is reported as not
	// found so a caller cannot probe which codes ever existed.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrUserNotFound         = errors.New("user not found")

	// Validation / registration errors.
	ErrValidation        = errors.New("validation error")
	ErrEmailAlreadyTaken = errors.New("email already taken")
)
