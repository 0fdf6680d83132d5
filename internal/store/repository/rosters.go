package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoopsight/courtlog/internal/store"
)

// RosterRepository handles roster data access. Player names are stored
// exactly as they appear in event-log column headers ("#1 John Smith")
// so parsed stat lines join back without any name massaging.
type RosterRepository struct {
	db *store.Database
}

// NewRosterRepository creates a new roster repository.
func NewRosterRepository(db *store.Database) *RosterRepository {
	return &RosterRepository{db: db}
}

// GetBySeason returns every roster entry for a season keyed by player name.
func (r *RosterRepository) GetBySeason(ctx context.Context, seasonID int64) (map[string]*store.RosterPlayer, error) {
	query := `
		SELECT roster_id, season_id, player_name, jersey_number, position, class_year, is_active, created_at
		FROM roster
		WHERE season_id = $1
		ORDER BY player_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	players := make(map[string]*store.RosterPlayer)
	for rows.Next() {
		p := &store.RosterPlayer{}
		if err := rows.Scan(
			&p.RosterID, &p.SeasonID, &p.PlayerName, &p.JerseyNumber, &p.Position, &p.ClassYear, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning roster player: %w", err)
		}
		players[p.PlayerName] = p
	}
	return players, rows.Err()
}

// GetOrCreate resolves a player name to a roster ID within a season,
// inserting a new roster entry when the name has not been seen before.
func (r *RosterRepository) GetOrCreate(ctx context.Context, tx *sql.Tx, seasonID int64, playerName string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT roster_id FROM roster WHERE season_id = $1 AND player_name = $2`,
		seasonID, playerName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("querying roster player %q: %w", playerName, err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO roster (season_id, player_name) VALUES ($1, $2) RETURNING roster_id`,
		seasonID, playerName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting roster player %q: %w", playerName, err)
	}
	return id, nil
}
