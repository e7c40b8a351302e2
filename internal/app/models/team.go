package models

import (
	"time"
)

// Team defines the team model based on the 'teams' table
type Team struct {
	ID          int64     `json:"id" db:"id"`
	HackathonID int64     `json:"hackathon_id" db:"hackathon_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	JoinCode    string    `json:"join_code" db:"join_code"` // Unique 6-char code for self-service joining
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TeamMember associates a user with a team
type TeamMember struct {
	TeamID   int64  `json:"team_id" db:"team_id"`
	UserID   int64  `json:"user_id" db:"user_id"`
	Username string `json:"username"` // Joined from users, no db tag
}
