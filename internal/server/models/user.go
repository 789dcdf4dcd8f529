package models

import "time"

// User is an account record. PasswordHash is a bcrypt hash of the original
// password and must never leave the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
