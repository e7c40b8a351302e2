package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/db"
	"github.com/hackmap/hackmap/internal/pkg/dberrors"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// Registration error types
var (
	// ErrAlreadyRegistered is returned when the (user, hackathon) unique
	// constraint fires.
	ErrAlreadyRegistered = ErrDuplicate
)

// RegistrationRepository handles hackathon registration database operations
type RegistrationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRegistration inserts a registration and its skill rows in one
// transaction. The (user_id, hackathon_id) unique constraint arbitrates
// concurrent duplicate registrations.
func (r *RegistrationRepository) CreateRegistration(ctx context.Context, registration *models.Registration) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO registrations (user_id, hackathon_id) VALUES ($1, $2)
			 RETURNING id, created_at`,
			registration.UserID, registration.HackathonID).Scan(&id, &registration.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("error creating registration: %w", err)
		}

		for _, skill := range registration.Skills {
			_, err := tx.Exec(ctx,
				`INSERT INTO registration_skills (registration_id, skill) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`, id, skill)
			if err != nil {
				return fmt.Errorf("error creating registration skill: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if err != ErrAlreadyRegistered {
			logger.Error().Err(err).Msg("Error executing create registration transaction")
		}
		return 0, err
	}
	registration.ID = id
	return id, nil
}

// IsRegistered reports whether the user has a registration for the hackathon
func (r *RegistrationRepository) IsRegistered(ctx context.Context, userID, hackathonID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM registrations WHERE user_id = $1 AND hackathon_id = $2)`,
		userID, hackathonID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing registration exists query")
		return false, fmt.Errorf("error checking registration: %w", err)
	}
	return exists, nil
}

// RegisteredHackathonIDs returns the set of hackathon IDs the user is
// registered for, used to compute list-view flags in one query.
func (r *RegistrationRepository) RegisteredHackathonIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT hackathon_id FROM registrations WHERE user_id = $1`, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing registered hackathons query")
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	ids := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
