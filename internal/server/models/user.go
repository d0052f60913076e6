// Package models contains the persistence-level entities shared by
// repositories and services.
package models

import "time"

// User is owned by the identity subsystem; the authentication core reads it
// to verify credentials but never mutates it directly.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
