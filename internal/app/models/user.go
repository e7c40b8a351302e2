package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email        string    `json:"email" db:"email" example:"ada@example.com"`               // User's email address
	Username     string    `json:"username" db:"username" example:"ada"`                     // User's unique display name
	PasswordHash string    `json:"-" db:"password_hash"`                                     // User's hashed password (excluded from JSON)
	CreatedAt    time.Time `json:"created_at" db:"created_at" example:"2025-01-01T10:00:00Z"` // Timestamp when the user was created
}
