package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hoopsight/courtlog/internal/store"
)

// PracticeRepository handles practice data access. A practice is
// identified by (season, category, date); reparsing a file for a
// session that was never created is an error, not an insert.
type PracticeRepository struct {
	db *store.Database
}

// NewPracticeRepository creates a new practice repository.
func NewPracticeRepository(db *store.Database) *PracticeRepository {
	return &PracticeRepository{db: db}
}

// GetByID finds a practice by ID.
func (r *PracticeRepository) GetByID(ctx context.Context, practiceID int64) (*store.Practice, error) {
	query := `
		SELECT practice_id, season_id, category, date, created_at, updated_at
		FROM practices
		WHERE practice_id = $1
	`

	p := &store.Practice{}
	err := r.db.DB().QueryRowContext(ctx, query, practiceID).Scan(
		&p.PracticeID, &p.SeasonID, &p.Category, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("practice not found: %d", practiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying practice: %w", err)
	}
	return p, nil
}

// Find looks up the practice for a (season, category, date) tuple.
// Returns nil without error when no such session exists.
func (r *PracticeRepository) Find(ctx context.Context, seasonID int64, category string, date time.Time) (*store.Practice, error) {
	query := `
		SELECT practice_id, season_id, category, date, created_at, updated_at
		FROM practices
		WHERE season_id = $1 AND category = $2 AND date = $3
	`

	p := &store.Practice{}
	err := r.db.DB().QueryRowContext(ctx, query, seasonID, category, date).Scan(
		&p.PracticeID, &p.SeasonID, &p.Category, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying practice by session: %w", err)
	}
	return p, nil
}

// ListBySeason returns a season's practices ordered by date.
func (r *PracticeRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*store.Practice, error) {
	query := `
		SELECT practice_id, season_id, category, date, created_at, updated_at
		FROM practices
		WHERE season_id = $1
		ORDER BY date
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying season practices: %w", err)
	}
	defer rows.Close()

	var practices []*store.Practice
	for rows.Next() {
		p := &store.Practice{}
		if err := rows.Scan(
			&p.PracticeID, &p.SeasonID, &p.Category, &p.Date, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning practice: %w", err)
		}
		practices = append(practices, p)
	}
	return practices, rows.Err()
}

// Create inserts a practice and returns its ID.
func (r *PracticeRepository) Create(ctx context.Context, p *store.Practice) (int64, error) {
	query := `
		INSERT INTO practices (season_id, category, date)
		VALUES ($1, $2, $3)
		RETURNING practice_id
	`

	var id int64
	err := r.db.DB().QueryRowContext(ctx, query, p.SeasonID, p.Category, p.Date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting practice: %w", err)
	}
	return id, nil
}

// Touch bumps a practice's updated_at, marking a reparse.
func (r *PracticeRepository) Touch(ctx context.Context, tx *sql.Tx, practiceID int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE practices SET updated_at = NOW() WHERE practice_id = $1`, practiceID); err != nil {
		return fmt.Errorf("touching practice: %w", err)
	}
	return nil
}
