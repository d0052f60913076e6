package models

import "time"

// RefreshToken is the single active refresh-token row for a user. The table
// keeps user_id unique, so rotation always overwrites the same row instead of
// accumulating history.
type RefreshToken struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
}
