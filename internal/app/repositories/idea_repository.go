package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackmap/hackmap/internal/app/models"
	"github.com/hackmap/hackmap/internal/db"
	"github.com/hackmap/hackmap/internal/pkg/dberrors"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// Idea error types
var (
	// ErrIdeaNotFound is returned when a project idea is not found.
	ErrIdeaNotFound = ErrNotFound
	// ErrAlreadyEndorsed is returned when the endorsements primary key
	// fires on a repeat endorsement.
	ErrAlreadyEndorsed = errors.New("idea already endorsed by user")
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx so relation helpers
// can run inside or outside a transaction.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// IdeaRepository handles project idea database operations
type IdeaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(db *pgxpool.Pool) *IdeaRepository {
	return &IdeaRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func techForIdea(ctx context.Context, q queryer, sb squirrel.StatementBuilderType, ideaID int64) ([]string, error) {
	sql, args, err := sb.Select("tech").
		From("project_idea_tech").
		Where(squirrel.Eq{"project_idea_id": ideaID}).
		OrderBy("tech ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build idea tech query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting idea tech: %w", err)
	}
	defer rows.Close()

	tech := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("error scanning tech row: %w", err)
		}
		tech = append(tech, t)
	}
	return tech, rows.Err()
}

// CreateIdea inserts a project idea and its tech rows in one transaction
func (r *IdeaRepository) CreateIdea(ctx context.Context, idea *models.ProjectIdea) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO project_ideas (team_id, summary) VALUES ($1, $2)
			 RETURNING id, created_at`,
			idea.TeamID, idea.Summary).Scan(&id, &idea.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating idea: %w", err)
		}

		for _, tech := range idea.Tech {
			_, err := tx.Exec(ctx,
				`INSERT INTO project_idea_tech (project_idea_id, tech) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`, id, tech)
			if err != nil {
				return fmt.Errorf("error creating idea tech: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create idea transaction")
		return 0, err
	}
	idea.ID = id
	return id, nil
}

// IdeaListing is a project idea row joined with its team name and the
// requester-relative endorsement view.
type IdeaListing struct {
	models.ProjectIdea
	TeamName         string
	EndorsementCount int
	UserHasEndorsed  bool
}

const ideaListingSelect = `
	SELECT pi.id, pi.team_id, pi.summary, pi.created_at, t.name,
	       (SELECT COUNT(*) FROM endorsements e WHERE e.project_idea_id = pi.id),
	       EXISTS(SELECT 1 FROM endorsements e WHERE e.project_idea_id = pi.id AND e.user_id = $1)
	FROM project_ideas pi
	JOIN teams t ON t.id = pi.team_id`

// ListIdeas returns all project ideas, newest first, with endorsement data
// computed relative to the requesting user
func (r *IdeaRepository) ListIdeas(ctx context.Context, requesterID int64) ([]IdeaListing, error) {
	rows, err := r.db.Query(ctx, ideaListingSelect+` ORDER BY pi.created_at DESC`, requesterID)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list ideas query")
		return nil, fmt.Errorf("error listing ideas: %w", err)
	}
	defer rows.Close()

	ideas := []IdeaListing{}
	for rows.Next() {
		var l IdeaListing
		err := rows.Scan(&l.ID, &l.TeamID, &l.Summary, &l.CreatedAt,
			&l.TeamName, &l.EndorsementCount, &l.UserHasEndorsed)
		if err != nil {
			return nil, fmt.Errorf("error scanning idea row: %w", err)
		}
		ideas = append(ideas, l)
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

// GetIdeaByID retrieves a single idea with its requester-relative
// endorsement view
func (r *IdeaRepository) GetIdeaByID(ctx context.Context, id, requesterID int64) (*IdeaListing, error) {
	var l IdeaListing
	err := r.db.QueryRow(ctx, ideaListingSelect+` WHERE pi.id = $2`, requesterID, id).
		Scan(&l.ID, &l.TeamID, &l.Summary, &l.CreatedAt,
			&l.TeamName, &l.EndorsementCount, &l.UserHasEndorsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrIdeaNotFound
		}
		logger.Error().Err(err).Msg("Error executing get idea query")
		return nil, fmt.Errorf("error getting idea: %w", err)
	}

	tech, err := techForIdea(ctx, r.db, r.sb, l.ID)
	if err != nil {
		return nil, err
	}
	l.Tech = tech
	return &l, nil
}

// CreateComment inserts a comment on an idea
func (r *IdeaRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (project_idea_id, user_id, content) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		comment.IdeaID, comment.UserID, comment.Content).Scan(&id, &comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	comment.ID = id
	return id, nil
}

// ListComments returns an idea's comments, newest first, with usernames
func (r *IdeaRepository) ListComments(ctx context.Context, ideaID int64) ([]models.Comment, error) {
	sql, args, err := r.sb.Select("c.id", "c.project_idea_id", "c.user_id", "u.username", "c.content", "c.created_at").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.project_idea_id": ideaID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Endorse records the user's endorsement and returns the updated count. The
// endorsements primary key arbitrates concurrent duplicates, so racing
// repeat endorsements raise the count by exactly one.
func (r *IdeaRepository) Endorse(ctx context.Context, ideaID, userID int64) (int, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO endorsements (project_idea_id, user_id) VALUES ($1, $2)`,
		ideaID, userID)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, ErrAlreadyEndorsed
		}
		logger.Error().Err(err).Msg("Error executing endorse query")
		return 0, fmt.Errorf("error endorsing idea: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM endorsements WHERE project_idea_id = $1`, ideaID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting endorsements: %w", err)
	}
	return count, nil
}
