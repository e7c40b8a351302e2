package models

import (
	"time"
)

// ProjectIdea defines the project idea model based on the 'project_ideas' table
type ProjectIdea struct {
	ID        int64     `json:"id" db:"id"`
	TeamID    int64     `json:"team_id" db:"team_id"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Tech      []string  `json:"tech"` // Relation via project_tech, no db tag
}

// Comment is a free-text remark on a project idea, immutable once posted
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	IdeaID    int64     `json:"project_idea_id" db:"project_idea_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Username  string    `json:"username"` // Joined from users, no db tag
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
