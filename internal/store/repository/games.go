package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoopsight/courtlog/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GetByID finds a game by ID.
func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (*store.Game, error) {
	query := `
		SELECT game_id, season_id, game_date, opponent, home_or_away, result, csv_filename, created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.SeasonID, &game.GameDate, &game.Opponent,
		&game.HomeOrAway, &game.Result, &game.CSVFilename, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// GetByCSVFilename finds the game previously created for an uploaded file.
// Returns nil without error when no game exists yet, so callers can decide
// between reuse and create.
func (r *GameRepository) GetByCSVFilename(ctx context.Context, filename string) (*store.Game, error) {
	query := `
		SELECT game_id, season_id, game_date, opponent, home_or_away, result, csv_filename, created_at, updated_at
		FROM games
		WHERE csv_filename = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, filename).Scan(
		&game.GameID, &game.SeasonID, &game.GameDate, &game.Opponent,
		&game.HomeOrAway, &game.Result, &game.CSVFilename, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying game by filename: %w", err)
	}
	return game, nil
}

// ListBySeason returns a season's games ordered by date.
func (r *GameRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*store.Game, error) {
	query := `
		SELECT game_id, season_id, game_date, opponent, home_or_away, result, csv_filename, created_at, updated_at
		FROM games
		WHERE season_id = $1
		ORDER BY game_date
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying season games: %w", err)
	}
	defer rows.Close()

	return r.scanGames(rows)
}

// Create inserts a game and returns its ID.
func (r *GameRepository) Create(ctx context.Context, game *store.Game) (int64, error) {
	query := `
		INSERT INTO games (season_id, game_date, opponent, home_or_away, csv_filename)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING game_id
	`

	var id int64
	err := r.db.DB().QueryRowContext(ctx, query,
		game.SeasonID, game.GameDate, game.Opponent, game.HomeOrAway, game.CSVFilename,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}
	return id, nil
}

// Touch bumps a game's updated_at so reparses are visible in listings.
func (r *GameRepository) Touch(ctx context.Context, tx *sql.Tx, gameID int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE games SET updated_at = NOW() WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("touching game: %w", err)
	}
	return nil
}

// scanGames scans multiple game rows.
func (r *GameRepository) scanGames(rows *sql.Rows) ([]*store.Game, error) {
	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.SeasonID, &game.GameDate, &game.Opponent,
			&game.HomeOrAway, &game.Result, &game.CSVFilename, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
