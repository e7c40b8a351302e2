package models

import (
	"time"
)

// Hackathon defines the hackathon model based on the 'hackathons' table
type Hackathon struct {
	ID                   int64     `json:"id" db:"id"`
	OrganizerID          int64     `json:"organizer_id" db:"organizer_id"` // Owning user; sole authority to edit
	Title                string    `json:"title" db:"title"`
	Theme                string    `json:"theme" db:"theme"`
	StartDate            time.Time `json:"start_date" db:"start_date"`
	EndDate              time.Time `json:"end_date" db:"end_date"`
	RegistrationDeadline time.Time `json:"registration_deadline" db:"registration_deadline"`
	Prizes               string    `json:"prizes" db:"prizes"`
	TeamSizeLimit        int       `json:"team_size_limit" db:"team_size_limit"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	Tags                 []string  `json:"tags"` // Relation via hackathon_tags, no db tag
}

// Registration links a participant to a hackathon they will take part in
type Registration struct {
	ID          int64     `json:"registration_id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	HackathonID int64     `json:"hackathon_id" db:"hackathon_id"`
	Skills      []string  `json:"skills"` // Relation via registration_skills, no db tag
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Tag is a reusable hackathon label, created-or-reused by exact name
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
