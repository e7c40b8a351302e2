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
	"github.com/hackmap/hackmap/internal/pkg/helpers"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// Team error types
var (
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = ErrNotFound
	// ErrTeamFull is returned when a join would exceed the hackathon's
	// team size limit.
	ErrTeamFull = errors.New("team is at capacity")
	// ErrAlreadyMember is returned when the user is already on the team.
	ErrAlreadyMember = errors.New("user is already a team member")
)

// joinCodeAttempts bounds the generate-and-retry loop on the join_code
// unique constraint. With 36^6 codes collisions are vanishingly rare.
const joinCodeAttempts = 5

// TeamRepository handles team database operations
type TeamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTeam inserts a team with a fresh join code and auto-joins the
// creator, all in one transaction. A join code collision retries with a new
// code rather than failing the request.
func (r *TeamRepository) CreateTeam(ctx context.Context, team *models.Team, creatorID int64) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var insertErr error
		for attempt := 0; attempt < joinCodeAttempts; attempt++ {
			code, err := helpers.GenerateJoinCode()
			if err != nil {
				return fmt.Errorf("error generating join code: %w", err)
			}

			insertErr = tx.QueryRow(ctx,
				`INSERT INTO teams (hackathon_id, name, description, join_code)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id, created_at`,
				team.HackathonID, team.Name, team.Description, code).
				Scan(&id, &team.CreatedAt)
			if insertErr == nil {
				team.JoinCode = code
				break
			}
			if !dberrors.IsDuplicateConstraintError(insertErr, "teams_join_code_key") {
				return fmt.Errorf("error creating team: %w", insertErr)
			}
		}
		if insertErr != nil {
			return fmt.Errorf("error creating team after %d join code attempts: %w", joinCodeAttempts, insertErr)
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, id, creatorID)
		if err != nil {
			return fmt.Errorf("error adding team creator: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create team transaction")
		return 0, err
	}
	team.ID = id
	return id, nil
}

// GetTeamByID retrieves a team by ID
func (r *TeamRepository) GetTeamByID(ctx context.Context, id int64) (*models.Team, error) {
	sql, args, err := r.sb.Select("id", "hackathon_id", "name", "description", "join_code", "created_at").
		From("teams").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get team query: %w", err)
	}

	team := &models.Team{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&team.ID, &team.HackathonID, &team.Name, &team.Description, &team.JoinCode, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		logger.Error().Err(err).Msg("Error executing get team query")
		return nil, fmt.Errorf("error getting team: %w", err)
	}
	return team, nil
}

// GetTeamMembers lists the team's members with usernames
func (r *TeamRepository) GetTeamMembers(ctx context.Context, teamID int64) ([]models.TeamMember, error) {
	sql, args, err := r.sb.Select("tm.team_id", "tm.user_id", "u.username").
		From("team_members tm").
		Join("users u ON u.id = tm.user_id").
		Where(squirrel.Eq{"tm.team_id": teamID}).
		OrderBy("u.username ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get team members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get team members query")
		return nil, fmt.Errorf("error getting team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Username); err != nil {
			return nil, fmt.Errorf("error scanning team member row: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// IsTeamMember reports whether the user belongs to the team
func (r *TeamRepository) IsTeamMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing team member exists query")
		return false, fmt.Errorf("error checking team membership: %w", err)
	}
	return exists, nil
}

// JoinByCode adds the user to the team identified by the join code. The team
// row is locked for the duration of the transaction so the member count
// cannot drift between the capacity check and the insert; concurrent joins
// into the last slot serialize on the lock and the loser gets ErrTeamFull.
func (r *TeamRepository) JoinByCode(ctx context.Context, joinCode string, userID int64) (*models.Team, error) {
	team := &models.Team{}
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT id, hackathon_id, name, description, join_code, created_at
			 FROM teams WHERE join_code = $1 FOR UPDATE`, joinCode).
			Scan(&team.ID, &team.HackathonID, &team.Name, &team.Description, &team.JoinCode, &team.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("error locking team row: %w", err)
		}

		var isMember bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
			team.ID, userID).Scan(&isMember)
		if err != nil {
			return fmt.Errorf("error checking team membership: %w", err)
		}
		if isMember {
			return ErrAlreadyMember
		}

		full, err := teamAtCapacity(ctx, tx, team.ID, team.HackathonID)
		if err != nil {
			return err
		}
		if full {
			return ErrTeamFull
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, team.ID, userID)
		if err != nil {
			if dberrors.IsDuplicateKeyError(err) {
				return ErrAlreadyMember
			}
			return fmt.Errorf("error adding team member: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrTeamNotFound) && !errors.Is(err, ErrTeamFull) && !errors.Is(err, ErrAlreadyMember) {
			logger.Error().Err(err).Msg("Error executing join team transaction")
		}
		return nil, err
	}
	return team, nil
}

// teamAtCapacity compares the live member count against the parent
// hackathon's team size limit. Callers must already hold the team row lock.
func teamAtCapacity(ctx context.Context, q queryer, teamID, hackathonID int64) (bool, error) {
	var limit int
	err := q.QueryRow(ctx,
		`SELECT team_size_limit FROM hackathons WHERE id = $1`, hackathonID).Scan(&limit)
	if err != nil {
		return false, fmt.Errorf("error reading team size limit: %w", err)
	}

	var count int
	err = q.QueryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error counting team members: %w", err)
	}
	return count >= limit, nil
}
