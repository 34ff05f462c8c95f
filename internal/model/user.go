// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash holds the argon2id PHC string and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
