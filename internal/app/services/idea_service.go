package services

import (
	"context"
	"errors"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// ideaStore is the slice of IdeaRepository the idea service needs.
type ideaStore interface {
	CreateIdea(ctx context.Context, idea *models.ProjectIdea) (int64, error)
	ListIdeas(ctx context.Context, requesterID int64) ([]repositories.IdeaListing, error)
	GetIdeaByID(ctx context.Context, id, requesterID int64) (*repositories.IdeaListing, error)
	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	ListComments(ctx context.Context, ideaID int64) ([]models.Comment, error)
	Endorse(ctx context.Context, ideaID, userID int64) (int, error)
}

// ideaTeamStore looks up teams and membership for posting gates.
type ideaTeamStore interface {
	GetTeamByID(ctx context.Context, id int64) (*models.Team, error)
	IsTeamMember(ctx context.Context, teamID, userID int64) (bool, error)
}

// IdeaService handles project ideas, comments, and endorsements
type IdeaService struct {
	ideas         ideaStore
	teams         ideaTeamStore
	registrations registrationChecker
}

// NewIdeaService creates a new IdeaService
func NewIdeaService(ideas ideaStore, teams ideaTeamStore, registrations registrationChecker) *IdeaService {
	return &IdeaService{
		ideas:         ideas,
		teams:         teams,
		registrations: registrations,
	}
}

func listingToResponse(l *repositories.IdeaListing) dto.IdeaResponse {
	tech := l.Tech
	if tech == nil {
		tech = []string{}
	}
	return dto.IdeaResponse{
		ID:               l.ID,
		TeamID:           l.TeamID,
		TeamName:         l.TeamName,
		Summary:          l.Summary,
		Tech:             tech,
		CreatedAt:        l.CreatedAt,
		EndorsementCount: l.EndorsementCount,
		UserHasEndorsed:  l.UserHasEndorsed,
	}
}

// CreateIdea posts a project idea for a team. Only members may post, and
// both a summary and at least one technology are required.
func (s *IdeaService) CreateIdea(ctx context.Context, userID, teamID int64, req *dto.IdeaRequest) (*models.ProjectIdea, error) {
	if req.Summary == "" {
		return nil, apperrors.NewValidationError("Summary is required")
	}
	if len(req.Tech) == 0 {
		return nil, apperrors.NewValidationError("Technologies are required")
	}

	if _, err := s.teams.GetTeamByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Team not found")
		}
		return nil, err
	}

	isMember, err := s.teams.IsTeamMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("You must be a team member to create an idea")
	}

	idea := &models.ProjectIdea{
		TeamID:  teamID,
		Summary: req.Summary,
		Tech:    req.Tech,
	}
	if _, err := s.ideas.CreateIdea(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// ListIdeas returns all ideas with endorsement data relative to the
// requester
func (s *IdeaService) ListIdeas(ctx context.Context, requesterID int64) ([]dto.IdeaResponse, error) {
	listings, err := s.ideas.ListIdeas(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.IdeaResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, listingToResponse(&listings[i]))
	}
	return resp, nil
}

// GetIdea returns one idea with its comments, newest first
func (s *IdeaService) GetIdea(ctx context.Context, id, requesterID int64) (*dto.IdeaDetailResponse, error) {
	listing, err := s.ideas.GetIdeaByID(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Idea not found")
		}
		return nil, err
	}

	comments, err := s.ideas.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.IdeaDetailResponse{
		IdeaResponse: listingToResponse(listing),
		Comments:     comments,
	}, nil
}

// requireHackathonRegistration checks that the user is registered for the
// hackathon the idea's team belongs to.
func (s *IdeaService) requireHackathonRegistration(ctx context.Context, userID, teamID int64, message string) error {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	registered, err := s.registrations.IsRegistered(ctx, userID, team.HackathonID)
	if err != nil {
		return err
	}
	if !registered {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// AddComment posts a comment on an idea. Commenters must be registered for
// the idea team's hackathon.
func (s *IdeaService) AddComment(ctx context.Context, userID, ideaID int64, req *dto.CommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, apperrors.NewValidationError("Comment content is required")
	}

	listing, err := s.ideas.GetIdeaByID(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Idea not found")
		}
		return nil, err
	}

	err = s.requireHackathonRegistration(ctx, userID, listing.TeamID,
		"You must be registered for the same hackathon to comment")
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		IdeaID:  ideaID,
		UserID:  userID,
		Content: req.Content,
	}
	if _, err := s.ideas.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Endorse records the requester's endorsement of an idea. The database
// primary key makes a repeat endorsement fail even under races.
func (s *IdeaService) Endorse(ctx context.Context, userID, ideaID int64) (*dto.EndorseResponse, error) {
	listing, err := s.ideas.GetIdeaByID(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrIdeaNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Idea not found")
		}
		return nil, err
	}

	err = s.requireHackathonRegistration(ctx, userID, listing.TeamID,
		"You must be registered for the same hackathon to endorse")
	if err != nil {
		return nil, err
	}

	count, err := s.ideas.Endorse(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyEndorsed) {
			return nil, apperrors.NewBadRequestError("You have already endorsed this idea")
		}
		return nil, err
	}
	return &dto.EndorseResponse{EndorsementCount: count}, nil
}
