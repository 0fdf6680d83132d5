package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoopsight/courtlog/internal/store"
)

// SeasonRepository handles season data access.
type SeasonRepository struct {
	db *store.Database
}

// NewSeasonRepository creates a new season repository.
func NewSeasonRepository(db *store.Database) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// GetByID finds a season by ID.
func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (*store.Season, error) {
	query := `
		SELECT season_id, name, start_date, end_date, is_active, created_at, updated_at
		FROM seasons
		WHERE season_id = $1
	`

	season := &store.Season{}
	err := r.db.DB().QueryRowContext(ctx, query, seasonID).Scan(
		&season.SeasonID, &season.Name, &season.StartDate, &season.EndDate,
		&season.IsActive, &season.CreatedAt, &season.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("season not found: %d", seasonID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying season: %w", err)
	}
	return season, nil
}

// GetActive returns the season currently marked active.
func (r *SeasonRepository) GetActive(ctx context.Context) (*store.Season, error) {
	query := `
		SELECT season_id, name, start_date, end_date, is_active, created_at, updated_at
		FROM seasons
		WHERE is_active = TRUE
		ORDER BY start_date DESC
		LIMIT 1
	`

	season := &store.Season{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&season.SeasonID, &season.Name, &season.StartDate, &season.EndDate,
		&season.IsActive, &season.CreatedAt, &season.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no active season")
	}
	if err != nil {
		return nil, fmt.Errorf("querying active season: %w", err)
	}
	return season, nil
}

// List returns all seasons, newest first.
func (r *SeasonRepository) List(ctx context.Context) ([]*store.Season, error) {
	query := `
		SELECT season_id, name, start_date, end_date, is_active, created_at, updated_at
		FROM seasons
		ORDER BY start_date DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*store.Season
	for rows.Next() {
		season := &store.Season{}
		if err := rows.Scan(
			&season.SeasonID, &season.Name, &season.StartDate, &season.EndDate,
			&season.IsActive, &season.CreatedAt, &season.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// Create inserts a season and returns its ID.
func (r *SeasonRepository) Create(ctx context.Context, season *store.Season) (int64, error) {
	query := `
		INSERT INTO seasons (name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING season_id
	`

	var id int64
	err := r.db.DB().QueryRowContext(ctx, query,
		season.Name, season.StartDate, season.EndDate, season.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting season: %w", err)
	}
	return id, nil
}
