package services

import (
	"context"
	"errors"
	"time"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

const defaultTeamSizeLimit = 4

// hackathonStore is the slice of HackathonRepository the service needs.
type hackathonStore interface {
	CreateHackathon(ctx context.Context, hackathon *models.Hackathon) (int64, error)
	UpdateHackathon(ctx context.Context, hackathon *models.Hackathon) error
	GetHackathonByID(ctx context.Context, id int64) (*models.Hackathon, error)
	ListHackathons(ctx context.Context) ([]models.Hackathon, error)
}

// registrationStore is the slice of RegistrationRepository the service needs.
type registrationStore interface {
	CreateRegistration(ctx context.Context, registration *models.Registration) (int64, error)
	IsRegistered(ctx context.Context, userID, hackathonID int64) (bool, error)
	RegisteredHackathonIDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

// HackathonService handles hackathon CRUD and registration
type HackathonService struct {
	hackathons    hackathonStore
	registrations registrationStore
	now           func() time.Time
}

// NewHackathonService creates a new HackathonService
func NewHackathonService(hackathons hackathonStore, registrations registrationStore) *HackathonService {
	return &HackathonService{
		hackathons:    hackathons,
		registrations: registrations,
		now:           time.Now,
	}
}

// validateHackathonRequest checks the payload field by field. The rules run
// in a fixed order so the first violated one names the response message.
func (s *HackathonService) validateHackathonRequest(req *dto.HackathonRequest) (*models.Hackathon, error) {
	if req.Title == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}
	if req.StartDate == "" || req.EndDate == "" || req.RegistrationDeadline == "" {
		return nil, apperrors.NewValidationError("All dates are required")
	}

	limit := defaultTeamSizeLimit
	if req.TeamSizeLimit != nil {
		limit = *req.TeamSizeLimit
	}
	if limit < 1 {
		return nil, apperrors.NewValidationError("Team size limit must be at least 1")
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("All dates are required")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("All dates are required")
	}
	deadline, err := time.Parse(time.RFC3339, req.RegistrationDeadline)
	if err != nil {
		return nil, apperrors.NewValidationError("All dates are required")
	}

	if !deadline.After(s.now()) {
		return nil, apperrors.NewValidationError("Registration deadline must be in the future")
	}
	if start.Before(deadline) {
		return nil, apperrors.NewValidationError("Start date must be after registration deadline")
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("End date must be after start date")
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	return &models.Hackathon{
		Title:                req.Title,
		Theme:                req.Theme,
		StartDate:            start,
		EndDate:              end,
		RegistrationDeadline: deadline,
		Prizes:               req.Prizes,
		TeamSizeLimit:        limit,
		Tags:                 tags,
	}, nil
}

// CreateHackathon publishes a new hackathon owned by organizerID
func (s *HackathonService) CreateHackathon(ctx context.Context, organizerID int64, req *dto.HackathonRequest) (*dto.HackathonResponse, error) {
	hackathon, err := s.validateHackathonRequest(req)
	if err != nil {
		return nil, err
	}
	hackathon.OrganizerID = organizerID

	if _, err := s.hackathons.CreateHackathon(ctx, hackathon); err != nil {
		return nil, err
	}
	return dto.NewHackathonResponse(hackathon, organizerID, false), nil
}

// UpdateHackathon rewrites a hackathon. Only the organizer may do this, and
// the tag set is replaced wholesale.
func (s *HackathonService) UpdateHackathon(ctx context.Context, id, requesterID int64, req *dto.HackathonRequest) (*dto.HackathonResponse, error) {
	updated, err := s.validateHackathonRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.hackathons.GetHackathonByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Hackathon not found")
		}
		return nil, err
	}
	if existing.OrganizerID != requesterID {
		return nil, apperrors.NewForbiddenError("You are not authorized to update this hackathon")
	}

	updated.ID = id
	updated.OrganizerID = existing.OrganizerID
	updated.CreatedAt = existing.CreatedAt
	if err := s.hackathons.UpdateHackathon(ctx, updated); err != nil {
		return nil, err
	}

	registered, err := s.registrations.IsRegistered(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewHackathonResponse(updated, requesterID, registered), nil
}

// GetHackathon returns one hackathon with requester-relative flags
func (s *HackathonService) GetHackathon(ctx context.Context, id, requesterID int64) (*dto.HackathonResponse, error) {
	hackathon, err := s.hackathons.GetHackathonByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Hackathon not found")
		}
		return nil, err
	}

	registered, err := s.registrations.IsRegistered(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewHackathonResponse(hackathon, requesterID, registered), nil
}

// ListHackathons returns all hackathons with requester-relative flags
func (s *HackathonService) ListHackathons(ctx context.Context, requesterID int64) ([]dto.HackathonResponse, error) {
	hackathons, err := s.hackathons.ListHackathons(ctx)
	if err != nil {
		return nil, err
	}

	registered, err := s.registrations.RegisteredHackathonIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.HackathonResponse, 0, len(hackathons))
	for i := range hackathons {
		resp = append(resp, *dto.NewHackathonResponse(&hackathons[i], requesterID, registered[hackathons[i].ID]))
	}
	return resp, nil
}

// Register signs the user up for a hackathon with their skills. Organizers
// cannot register for their own hackathon, and the unique constraint on
// (user, hackathon) turns a lost duplicate race into a conflict.
func (s *HackathonService) Register(ctx context.Context, userID, hackathonID int64, req *dto.RegisterRequest) (*models.Registration, error) {
	if len(req.Skills) == 0 {
		return nil, apperrors.NewValidationError("Skills are required")
	}

	hackathon, err := s.hackathons.GetHackathonByID(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Hackathon not found")
		}
		return nil, err
	}
	if hackathon.OrganizerID == userID {
		return nil, apperrors.NewBadRequestError("You cannot register for a hackathon you are organizing")
	}

	registration := &models.Registration{
		UserID:      userID,
		HackathonID: hackathonID,
		Skills:      req.Skills,
	}
	if _, err := s.registrations.CreateRegistration(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrAlreadyRegistered) {
			return nil, apperrors.NewConflictError("Already registered for this hackathon")
		}
		return nil, err
	}
	return registration, nil
}
