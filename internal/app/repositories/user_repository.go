package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/pkg/dberrors"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// User error types
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = ErrNotFound
	// ErrEmailTaken is returned when the email unique constraint fires.
	ErrEmailTaken = errors.New("email already taken")
	// ErrUsernameTaken is returned when the username unique constraint fires.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a new user. The email and username unique constraints
// arbitrate duplicates, so a lost check-then-insert race still surfaces as
// ErrEmailTaken or ErrUsernameTaken.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "username", "password_hash").
		Values(user.Email, user.Username, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, ErrEmailTaken
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, ErrUsernameTaken
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) getUser(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "email", "username", "password_hash", "created_at").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error executing get user query")
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"username": username})
}

// GetLatestSkills returns the skills attached to the user's most recent
// hackathon registration, capped at limit.
func (r *UserRepository) GetLatestSkills(ctx context.Context, userID int64, limit uint64) ([]string, error) {
	sql, args, err := r.sb.Select("rs.skill").
		From("registration_skills rs").
		Join("registrations r ON r.id = rs.registration_id").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC", "rs.skill ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get skills query")
		return nil, fmt.Errorf("error getting skills: %w", err)
	}
	defer rows.Close()

	skills := []string{}
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

// GetUserTeams lists every team the user is a member of
func (r *UserRepository) GetUserTeams(ctx context.Context, userID int64) ([]models.Team, error) {
	sql, args, err := r.sb.Select("t.id", "t.hackathon_id", "t.name", "t.description", "t.join_code", "t.created_at").
		From("teams t").
		Join("team_members tm ON tm.team_id = t.id").
		Where(squirrel.Eq{"tm.user_id": userID}).
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user teams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get user teams query")
		return nil, fmt.Errorf("error getting user teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.HackathonID, &t.Name, &t.Description, &t.JoinCode, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetUserIdeas lists every project idea posted by teams the user belongs to
func (r *UserRepository) GetUserIdeas(ctx context.Context, userID int64) ([]models.ProjectIdea, error) {
	sql, args, err := r.sb.Select("pi.id", "pi.team_id", "pi.summary", "pi.created_at").
		From("project_ideas pi").
		Join("team_members tm ON tm.team_id = pi.team_id").
		Where(squirrel.Eq{"tm.user_id": userID}).
		OrderBy("pi.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user ideas query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get user ideas query")
		return nil, fmt.Errorf("error getting user ideas: %w", err)
	}
	defer rows.Close()

	ideas := []models.ProjectIdea{}
	for rows.Next() {
		var idea models.ProjectIdea
		if err := rows.Scan(&idea.ID, &idea.TeamID, &idea.Summary, &idea.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning idea row: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range ideas {
		tech, err := techForIdea(ctx, r.db, r.sb, ideas[i].ID)
		if err != nil {
			return nil, err
		}
		ideas[i].Tech = tech
	}
	return ideas, nil
}
