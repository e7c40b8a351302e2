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
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// Hackathon error types
var (
	// ErrHackathonNotFound is returned when a hackathon is not found.
	ErrHackathonNotFound = ErrNotFound
)

// HackathonRepository handles hackathon database operations
type HackathonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHackathonRepository creates a new HackathonRepository
func NewHackathonRepository(db *pgxpool.Pool) *HackathonRepository {
	return &HackathonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var hackathonColumns = []string{
	"id", "organizer_id", "title", "theme", "start_date", "end_date",
	"registration_deadline", "prizes", "team_size_limit", "created_at",
}

func scanHackathon(row pgx.Row) (*models.Hackathon, error) {
	h := &models.Hackathon{}
	err := row.Scan(&h.ID, &h.OrganizerID, &h.Title, &h.Theme, &h.StartDate,
		&h.EndDate, &h.RegistrationDeadline, &h.Prizes, &h.TeamSizeLimit, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// upsertTags resolves tag names to IDs inside tx, creating missing tags.
// The upsert keeps concurrent create-or-reuse of the same name from failing
// on the tags name unique constraint.
func (r *HackathonRepository) upsertTags(ctx context.Context, tx pgx.Tx, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO tags (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, name).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("error upserting tag %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *HackathonRepository) replaceTags(ctx context.Context, tx pgx.Tx, hackathonID int64, names []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM hackathon_tags WHERE hackathon_id = $1`, hackathonID); err != nil {
		return fmt.Errorf("error clearing hackathon tags: %w", err)
	}
	ids, err := r.upsertTags(ctx, tx, names)
	if err != nil {
		return err
	}
	for _, tagID := range ids {
		_, err := tx.Exec(ctx,
			`INSERT INTO hackathon_tags (hackathon_id, tag_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, hackathonID, tagID)
		if err != nil {
			return fmt.Errorf("error linking hackathon tag: %w", err)
		}
	}
	return nil
}

// CreateHackathon inserts a hackathon and its tag links in one transaction
func (r *HackathonRepository) CreateHackathon(ctx context.Context, hackathon *models.Hackathon) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("hackathons").
			Columns("organizer_id", "title", "theme", "start_date", "end_date",
				"registration_deadline", "prizes", "team_size_limit").
			Values(hackathon.OrganizerID, hackathon.Title, hackathon.Theme,
				hackathon.StartDate, hackathon.EndDate, hackathon.RegistrationDeadline,
				hackathon.Prizes, hackathon.TeamSizeLimit).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create hackathon query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id, &hackathon.CreatedAt); err != nil {
			return fmt.Errorf("error creating hackathon: %w", err)
		}

		return r.replaceTags(ctx, tx, id, hackathon.Tags)
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create hackathon transaction")
		return 0, err
	}
	hackathon.ID = id
	return id, nil
}

// UpdateHackathon rewrites a hackathon's fields and replaces its tag set
// wholesale in one transaction
func (r *HackathonRepository) UpdateHackathon(ctx context.Context, hackathon *models.Hackathon) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Update("hackathons").
			Set("title", hackathon.Title).
			Set("theme", hackathon.Theme).
			Set("start_date", hackathon.StartDate).
			Set("end_date", hackathon.EndDate).
			Set("registration_deadline", hackathon.RegistrationDeadline).
			Set("prizes", hackathon.Prizes).
			Set("team_size_limit", hackathon.TeamSizeLimit).
			Where(squirrel.Eq{"id": hackathon.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update hackathon query: %w", err)
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating hackathon: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrHackathonNotFound
		}

		return r.replaceTags(ctx, tx, hackathon.ID, hackathon.Tags)
	})
}

// GetHackathonByID retrieves a hackathon with its tags
func (r *HackathonRepository) GetHackathonByID(ctx context.Context, id int64) (*models.Hackathon, error) {
	sql, args, err := r.sb.Select(hackathonColumns...).
		From("hackathons").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get hackathon query: %w", err)
	}

	h, err := scanHackathon(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHackathonNotFound
		}
		logger.Error().Err(err).Msg("Error executing get hackathon query")
		return nil, fmt.Errorf("error getting hackathon: %w", err)
	}

	tags, err := r.tagsForHackathon(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	h.Tags = tags
	return h, nil
}

// ListHackathons returns all hackathons, newest first, with tags attached
func (r *HackathonRepository) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	sql, args, err := r.sb.Select(hackathonColumns...).
		From("hackathons").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list hackathons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list hackathons query")
		return nil, fmt.Errorf("error listing hackathons: %w", err)
	}
	defer rows.Close()

	hackathons := []models.Hackathon{}
	for rows.Next() {
		h, err := scanHackathon(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning hackathon row: %w", err)
		}
		hackathons = append(hackathons, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range hackathons {
		tags, err := r.tagsForHackathon(ctx, hackathons[i].ID)
		if err != nil {
			return nil, err
		}
		hackathons[i].Tags = tags
	}
	return hackathons, nil
}

func (r *HackathonRepository) tagsForHackathon(ctx context.Context, hackathonID int64) ([]string, error) {
	sql, args, err := r.sb.Select("t.name").
		From("tags t").
		Join("hackathon_tags ht ON ht.tag_id = t.id").
		Where(squirrel.Eq{"ht.hackathon_id": hackathonID}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build hackathon tags query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting hackathon tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning tag row: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}
