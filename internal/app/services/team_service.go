package services

import (
	"context"
	"errors"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
	"github.com/hackmap/hackmap/internal/pkg/email"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// teamStore is the slice of TeamRepository the team service needs.
type teamStore interface {
	CreateTeam(ctx context.Context, team *models.Team, creatorID int64) (int64, error)
	GetTeamByID(ctx context.Context, id int64) (*models.Team, error)
	GetTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error)
	IsTeamMember(ctx context.Context, teamID, userID int64) (bool, error)
	JoinByCode(ctx context.Context, joinCode string, userID int64) (*models.Team, error)
}

// inviteUserStore resolves invite targets by username.
type inviteUserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// inviteNotificationStore creates and deduplicates invite notifications.
type inviteNotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) (int64, error)
	HasPendingInvite(ctx context.Context, userID, teamID int64) (bool, error)
}

// hackathonReader is the read-only hackathon access team creation needs.
type hackathonReader interface {
	GetHackathonByID(ctx context.Context, id int64) (*models.Hackathon, error)
}

// registrationChecker gates team creation on hackathon registration.
type registrationChecker interface {
	IsRegistered(ctx context.Context, userID, hackathonID int64) (bool, error)
}

// TeamService handles team creation, membership, and invitations
type TeamService struct {
	teams         teamStore
	users         inviteUserStore
	notifications inviteNotificationStore
	hackathons    hackathonReader
	registrations registrationChecker
	email         email.EmailService
}

// NewTeamService creates a new TeamService
func NewTeamService(
	teams teamStore,
	users inviteUserStore,
	notifications inviteNotificationStore,
	hackathons hackathonReader,
	registrations registrationChecker,
	emailService email.EmailService,
) *TeamService {
	return &TeamService{
		teams:         teams,
		users:         users,
		notifications: notifications,
		hackathons:    hackathons,
		registrations: registrations,
		email:         emailService,
	}
}

// CreateTeam creates a team under a hackathon. The creator must organize
// the hackathon or be registered for it, and is auto-joined as the first
// member.
func (s *TeamService) CreateTeam(ctx context.Context, userID, hackathonID int64, req *dto.TeamRequest) (*models.Team, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("Team name is required")
	}

	hackathon, err := s.hackathons.GetHackathonByID(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Hackathon not found")
		}
		return nil, err
	}

	if hackathon.OrganizerID != userID {
		registered, err := s.registrations.IsRegistered(ctx, userID, hackathonID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, apperrors.NewForbiddenError("You must be registered for this hackathon to create a team")
		}
	}

	team := &models.Team{
		HackathonID: hackathonID,
		Name:        req.Name,
		Description: req.Description,
	}
	if _, err := s.teams.CreateTeam(ctx, team, userID); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam returns a team with its members
func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (*dto.TeamResponse, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Team not found")
		}
		return nil, err
	}

	members, err := s.teams.GetTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &dto.TeamResponse{
		ID:          team.ID,
		HackathonID: team.HackathonID,
		Name:        team.Name,
		Description: team.Description,
		JoinCode:    team.JoinCode,
		Members:     members,
	}, nil
}

// Invite sends a PENDING team invite to the named user. The invite email is
// fire and forget; a delivery failure never fails the request.
func (s *TeamService) Invite(ctx context.Context, inviterID, teamID int64, req *dto.InviteRequest) (*dto.InviteResponse, error) {
	if req.Username == "" {
		return nil, apperrors.NewValidationError("Username is required")
	}

	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Team not found")
		}
		return nil, err
	}

	isMember, err := s.teams.IsTeamMember(ctx, teamID, inviterID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.NewForbiddenError("You must be a team member to invite users")
	}

	invitee, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, err
	}

	alreadyMember, err := s.teams.IsTeamMember(ctx, teamID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, apperrors.NewConflictError("User is already a team member")
	}

	pending, err := s.notifications.HasPendingInvite(ctx, invitee.ID, teamID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflictError("Invitation already sent")
	}

	notification := &models.Notification{
		UserID:   invitee.ID,
		Type:     models.NotificationTeamInvite,
		TeamID:   teamID,
		SenderID: inviterID,
	}
	if _, err := s.notifications.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}

	go s.sendInviteEmail(inviterID, invitee.Email, team.Name)

	return &dto.InviteResponse{
		NotificationID: notification.ID,
		Type:           notification.Type,
		Status:         notification.Status,
	}, nil
}

func (s *TeamService) sendInviteEmail(inviterID int64, inviteeEmail, teamName string) {
	inviter, err := s.users.GetUserByID(context.Background(), inviterID)
	if err != nil {
		logger.Warn().Err(err).Int64("inviterId", inviterID).Msg("Could not load inviter for invite email")
		return
	}
	if err := s.email.SendTeamInviteEmail(inviteeEmail, inviter.Username, teamName); err != nil {
		logger.Warn().Err(err).Str("to", inviteeEmail).Msg("Failed to send team invite email")
	}
}

// Join adds the user to the team behind a join code. Capacity is decided
// inside the repository transaction while the team row is locked, so racing
// joins into the last slot produce exactly one member.
func (s *TeamService) Join(ctx context.Context, userID int64, req *dto.JoinRequest) (*dto.JoinResponse, error) {
	if req.JoinCode == "" {
		return nil, apperrors.NewValidationError("Join code is required")
	}

	team, err := s.teams.JoinByCode(ctx, req.JoinCode, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, apperrors.NewBadRequestError("Invalid join code")
		case errors.Is(err, repositories.ErrAlreadyMember):
			return nil, apperrors.NewConflictError("You are already a team member")
		case errors.Is(err, repositories.ErrTeamFull):
			return nil, apperrors.NewForbiddenError("Team is full")
		}
		return nil, err
	}

	return &dto.JoinResponse{TeamID: team.ID, UserID: userID}, nil
}
