package services

import (
	"context"
	"errors"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/repositories"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// notificationStore is the slice of NotificationRepository the service needs.
type notificationStore interface {
	GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	Decline(ctx context.Context, id int64) error
	AcceptStatusOnly(ctx context.Context, id int64) error
	AcceptTeamInvite(ctx context.Context, n *models.Notification) error
}

// NotificationService handles listing notifications and the respond workflow
type NotificationService struct {
	notifications notificationStore
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications notificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notifications.ListNotifications(ctx, userID)
}

// Respond answers a pending notification with ACCEPT or DECLINE. The status
// is monotonic: once a terminal status is written, any later response sees a
// conflict, including responses that lose a race. Accepting a TEAM_INVITE
// joins the team, registering the user for the hackathon first if needed;
// accepting a JOIN_REQUEST only flips the status.
func (s *NotificationService) Respond(ctx context.Context, userID, notificationID int64, req *dto.RespondRequest) (*dto.RespondResponse, error) {
	if req.Action != "ACCEPT" && req.Action != "DECLINE" {
		return nil, apperrors.NewValidationError("Valid action (ACCEPT or DECLINE) is required")
	}

	notification, err := s.notifications.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Notification not found")
		}
		return nil, err
	}

	if notification.UserID != userID {
		return nil, apperrors.NewForbiddenError("You can only respond to your own notifications")
	}
	if notification.Status != models.NotificationPending {
		return nil, alreadyRespondedError()
	}

	if req.Action == "DECLINE" {
		if err := s.notifications.Decline(ctx, notificationID); err != nil {
			return nil, mapRespondError(err)
		}
		return &dto.RespondResponse{ID: notificationID, Status: string(models.NotificationDeclined)}, nil
	}

	if notification.Type == models.NotificationTeamInvite {
		if err := s.notifications.AcceptTeamInvite(ctx, notification); err != nil {
			return nil, mapRespondError(err)
		}
	} else {
		if err := s.notifications.AcceptStatusOnly(ctx, notificationID); err != nil {
			return nil, mapRespondError(err)
		}
	}
	return &dto.RespondResponse{ID: notificationID, Status: string(models.NotificationAccepted)}, nil
}

func alreadyRespondedError() error {
	return &apperrors.CustomError{
		Err:     apperrors.ErrNotificationResponded,
		Message: "This notification has already been responded to",
	}
}

func mapRespondError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAlreadyResponded):
		return alreadyRespondedError()
	case errors.Is(err, repositories.ErrTeamFull):
		return &apperrors.CustomError{Err: apperrors.ErrTeamFull, Message: "Team is full"}
	case errors.Is(err, repositories.ErrAlreadyMember):
		return apperrors.NewConflictError("You are already a team member")
	}
	return err
}
