package dto

import "github.com/hackmap/hackmap/internal/app/models"

// TeamRequest is the team creation payload
type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TeamResponse is a team together with its current members
type TeamResponse struct {
	ID          int64               `json:"id"`
	HackathonID int64               `json:"hackathon_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	JoinCode    string              `json:"join_code"`
	Members     []models.TeamMember `json:"members"`
}

// InviteRequest targets a user by their unique username
type InviteRequest struct {
	Username string `json:"username"`
}

// InviteResponse acknowledges a created invite notification
type InviteResponse struct {
	NotificationID int64                     `json:"notification_id"`
	Type           models.NotificationType   `json:"type"`
	Status         models.NotificationStatus `json:"status"`
}

// JoinRequest carries a join code for self-service team joining
type JoinRequest struct {
	JoinCode string `json:"join_code"`
}

// JoinResponse acknowledges a successful join
type JoinResponse struct {
	TeamID int64 `json:"team_id"`
	UserID int64 `json:"user_id"`
}
