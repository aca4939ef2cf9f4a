package models

import "time"

// UserDB represents an account record in the database.
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                     // Primary key, store-assigned
	Username     string    `json:"username" db:"username"`         // Unique among active accounts
	PasswordHash string    `json:"-" db:"password_hash"`           // bcrypt digest, never serialized
	Active       bool      `json:"active" db:"active"`             // Soft-delete flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
