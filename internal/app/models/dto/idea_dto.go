package dto

import (
	"time"

	"github.com/hackmap/hackmap/internal/app/models"
)

// IdeaRequest is the project idea creation payload
type IdeaRequest struct {
	Summary string   `json:"summary"`
	Tech    []string `json:"tech"`
}

// IdeaResponse is a project idea with its requester-relative endorsement view
type IdeaResponse struct {
	ID               int64     `json:"id"`
	TeamID           int64     `json:"team_id"`
	TeamName         string    `json:"team_name,omitempty"`
	Summary          string    `json:"summary"`
	Tech             []string  `json:"tech"`
	CreatedAt        time.Time `json:"created_at"`
	EndorsementCount int       `json:"endorsement_count"`
	UserHasEndorsed  bool      `json:"user_has_endorsed"`
}

// IdeaDetailResponse is an idea plus its comments, newest first
type IdeaDetailResponse struct {
	IdeaResponse
	Comments []models.Comment `json:"comments"`
}

// CommentRequest is the comment creation payload
type CommentRequest struct {
	Content string `json:"content"`
}

// EndorseResponse carries the post-endorsement count
type EndorseResponse struct {
	EndorsementCount int `json:"endorsement_count"`
}
