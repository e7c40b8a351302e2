package services

import (
	"context"
	"errors"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// profileSkillLimit caps the skills shown on a profile.
const profileSkillLimit = 10

// profileStore is the slice of UserRepository the user service needs.
type profileStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetLatestSkills(ctx context.Context, userID int64, limit uint64) ([]string, error)
	GetUserTeams(ctx context.Context, userID int64) ([]models.Team, error)
	GetUserIdeas(ctx context.Context, userID int64) ([]models.ProjectIdea, error)
}

// UserService serves the authenticated user's own profile views
type UserService struct {
	users profileStore
}

// NewUserService creates a new UserService
func NewUserService(users profileStore) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the user's profile with the skills from their most
// recent registration
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, err
	}

	skills, err := s.users.GetLatestSkills(ctx, userID, profileSkillLimit)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Skills:   skills,
	}, nil
}

// GetTeams lists the teams the user belongs to
func (s *UserService) GetTeams(ctx context.Context, userID int64) ([]dto.UserTeamResponse, error) {
	teams, err := s.users.GetUserTeams(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.UserTeamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, dto.UserTeamResponse{
			TeamID:      t.ID,
			HackathonID: t.HackathonID,
			Name:        t.Name,
			Description: t.Description,
			JoinCode:    t.JoinCode,
		})
	}
	return resp, nil
}

// GetIdeas lists the project ideas posted by the user's teams
func (s *UserService) GetIdeas(ctx context.Context, userID int64) ([]models.ProjectIdea, error) {
	return s.users.GetUserIdeas(ctx, userID)
}
