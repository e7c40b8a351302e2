package dto

import (
	"time"

	"github.com/hackmap/hackmap/internal/app/models"
)

// HackathonRequest is the create/update payload. Dates arrive as RFC 3339
// strings and are validated in the service layer so the error messages can
// name the offending rule rather than a JSON decoding failure.
type HackathonRequest struct {
	Title                string   `json:"title"`
	Theme                string   `json:"theme"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	RegistrationDeadline string   `json:"registration_deadline"`
	Prizes               string   `json:"prizes"`
	TeamSizeLimit        *int     `json:"team_size_limit"`
	Tags                 []string `json:"tags"`
}

// HackathonResponse is a hackathon as seen by a particular requester. The
// organizer and registration flags are requester-relative, and organiser_id
// is kept alongside organizer_id for older clients.
type HackathonResponse struct {
	ID                   int64     `json:"id"`
	OrganizerID          int64     `json:"organizer_id"`
	OrganiserID          int64     `json:"organiser_id"`
	Title                string    `json:"title"`
	Theme                string    `json:"theme"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	Prizes               string    `json:"prizes"`
	TeamSizeLimit        int       `json:"team_size_limit"`
	CreatedAt            time.Time `json:"created_at"`
	Tags                 []string  `json:"tags"`
	IsOrganizer          bool      `json:"is_organizer"`
	Registered           bool      `json:"registered"`
}

// NewHackathonResponse builds the requester-relative view of a hackathon.
func NewHackathonResponse(h *models.Hackathon, requesterID int64, registered bool) *HackathonResponse {
	tags := h.Tags
	if tags == nil {
		tags = []string{}
	}
	return &HackathonResponse{
		ID:                   h.ID,
		OrganizerID:          h.OrganizerID,
		OrganiserID:          h.OrganizerID,
		Title:                h.Title,
		Theme:                h.Theme,
		StartDate:            h.StartDate,
		EndDate:              h.EndDate,
		RegistrationDeadline: h.RegistrationDeadline,
		Prizes:               h.Prizes,
		TeamSizeLimit:        h.TeamSizeLimit,
		CreatedAt:            h.CreatedAt,
		Tags:                 tags,
		IsOrganizer:          h.OrganizerID == requesterID,
		Registered:           registered,
	}
}

// RegisterRequest is the hackathon registration payload
type RegisterRequest struct {
	Skills []string `json:"skills"`
}
