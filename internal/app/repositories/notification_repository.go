package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/db"
	"github.com/hackmap/hackmap/internal/pkg/dberrors"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// Notification error types
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = ErrNotFound
	// ErrAlreadyResponded is returned when a conditional status write finds
	// the notification no longer PENDING. ACCEPTED and DECLINED are
	// absorbing states.
	ErrAlreadyResponded = errors.New("notification already responded to")
)

// placeholderSkill is attached to registrations created implicitly when an
// unregistered user accepts a team invite.
const placeholderSkill = "Team Member"

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateNotification inserts a PENDING notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, team_id, sender_id, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		n.UserID, n.Type, n.TeamID, n.SenderID, models.NotificationPending).
		Scan(&id, &n.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create notification query")
		return 0, fmt.Errorf("error creating notification: %w", err)
	}
	n.ID = id
	n.Status = models.NotificationPending
	return id, nil
}

// HasPendingInvite reports whether the user already has a PENDING
// TEAM_INVITE for the team
func (r *NotificationRepository) HasPendingInvite(ctx context.Context, userID, teamID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications
		 WHERE user_id = $1 AND team_id = $2 AND type = $3 AND status = $4)`,
		userID, teamID, models.NotificationTeamInvite, models.NotificationPending).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing pending invite exists query")
		return false, fmt.Errorf("error checking pending invite: %w", err)
	}
	return exists, nil
}

// GetNotificationByID retrieves a notification by ID
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id int64) (*models.Notification, error) {
	n := &models.Notification{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, type, team_id, sender_id, status, created_at
		 FROM notifications WHERE id = $1`, id).
		Scan(&n.ID, &n.UserID, &n.Type, &n.TeamID, &n.SenderID, &n.Status, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		logger.Error().Err(err).Msg("Error executing get notification query")
		return nil, fmt.Errorf("error getting notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns the user's notifications, newest first, joined
// with the sender's username and the team's name
func (r *NotificationRepository) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	sql, args, err := r.sb.Select("n.id", "n.user_id", "n.type", "n.team_id", "n.sender_id",
		"n.status", "n.created_at", "u.username", "t.name").
		From("notifications n").
		Join("users u ON u.id = n.sender_id").
		Join("teams t ON t.id = n.team_id").
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.TeamID, &n.SenderID,
			&n.Status, &n.CreatedAt, &n.SenderUsername, &n.TeamName)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// setStatusIfPending performs the single conditional terminal write. Zero
// rows affected means another responder won the race.
func setStatusIfPending(ctx context.Context, q queryer, id int64, status models.NotificationStatus) error {
	tag, err := q.Exec(ctx,
		`UPDATE notifications SET status = $1 WHERE id = $2 AND status = $3`,
		status, id, models.NotificationPending)
	if err != nil {
		return fmt.Errorf("error updating notification status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyResponded
	}
	return nil
}

// Decline marks the notification DECLINED if it is still PENDING
func (r *NotificationRepository) Decline(ctx context.Context, id int64) error {
	return setStatusIfPending(ctx, r.db, id, models.NotificationDeclined)
}

// AcceptStatusOnly marks the notification ACCEPTED with no side effects.
// Used for JOIN_REQUEST, whose acceptance does not add a member.
func (r *NotificationRepository) AcceptStatusOnly(ctx context.Context, id int64) error {
	return setStatusIfPending(ctx, r.db, id, models.NotificationAccepted)
}

// AcceptTeamInvite accepts a TEAM_INVITE in one transaction: the team row is
// locked, capacity is checked against the live member count, a registration
// is created if the addressee lacks one, the membership row is inserted, and
// only then does the conditional PENDING to ACCEPTED write happen. A full
// team instead declines the notification and returns ErrTeamFull. The
// decline must survive, so the capacity failure commits the decline-only
// transaction and is surfaced afterwards.
func (r *NotificationRepository) AcceptTeamInvite(ctx context.Context, n *models.Notification) error {
	var teamFull bool
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		full, err := acceptTeamInviteTx(ctx, tx, n)
		teamFull = full
		return err
	})
	if err != nil {
		return err
	}
	if teamFull {
		return ErrTeamFull
	}
	return nil
}

// acceptTeamInviteTx runs the accept workflow against q, which is expected
// to hold the transaction. When the team is full it declines the
// notification and reports full with a nil error, so the enclosing
// transaction commits the decline.
func acceptTeamInviteTx(ctx context.Context, q queryer, n *models.Notification) (bool, error) {
	var hackathonID int64
	err := q.QueryRow(ctx,
		`SELECT hackathon_id FROM teams WHERE id = $1 FOR UPDATE`, n.TeamID).
		Scan(&hackathonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrTeamNotFound
		}
		return false, fmt.Errorf("error locking team row: %w", err)
	}

	full, err := teamAtCapacity(ctx, q, n.TeamID, hackathonID)
	if err != nil {
		return false, err
	}
	if full {
		return true, setStatusIfPending(ctx, q, n.ID, models.NotificationDeclined)
	}

	var registered bool
	err = q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE user_id = $1 AND hackathon_id = $2)`,
		n.UserID, hackathonID).Scan(&registered)
	if err != nil {
		return false, fmt.Errorf("error checking registration: %w", err)
	}
	if !registered {
		var registrationID int64
		err = q.QueryRow(ctx,
			`INSERT INTO registrations (user_id, hackathon_id) VALUES ($1, $2)
			 RETURNING id`, n.UserID, hackathonID).Scan(&registrationID)
		if err != nil {
			return false, fmt.Errorf("error creating implicit registration: %w", err)
		}
		_, err = q.Exec(ctx,
			`INSERT INTO registration_skills (registration_id, skill) VALUES ($1, $2)`,
			registrationID, placeholderSkill)
		if err != nil {
			return false, fmt.Errorf("error creating placeholder skill: %w", err)
		}
	}

	_, err = q.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		n.TeamID, n.UserID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return false, ErrAlreadyMember
		}
		return false, fmt.Errorf("error adding team member: %w", err)
	}

	return false, setStatusIfPending(ctx, q, n.ID, models.NotificationAccepted)
}
