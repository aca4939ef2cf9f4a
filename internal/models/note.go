package models

import "time"

// NoteDB represents a note record in the database.
type NoteDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    int64     `json:"user_id" db:"user_id"`       // Owning account
	Title     string    `json:"title" db:"title"`           // Note title
	Content   string    `json:"content" db:"content"`       // Note body
	Active    bool      `json:"active" db:"active"`         // Soft-delete flag
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
