// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is an Argon2id PHC string.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the caller resolved from a bearer token.
type Identity struct {
	ID    int64
	Email string
}
