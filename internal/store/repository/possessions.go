package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoopsight/courtlog/internal/cooe"
	"github.com/hoopsight/courtlog/internal/store"
)

// PossessionRepository handles possession rows and their attached
// players and events.
type PossessionRepository struct {
	db *store.Database
}

// NewPossessionRepository creates a new possession repository.
func NewPossessionRepository(db *store.Database) *PossessionRepository {
	return &PossessionRepository{db: db}
}

// Insert writes one possession inside the caller's transaction and
// returns its ID so players and events can be attached.
func (r *PossessionRepository) Insert(ctx context.Context, tx *sql.Tx, p *store.Possession) (int64, error) {
	query := `
		INSERT INTO possessions (season_id, game_id, practice_id, possession_side, time_segment,
			possession_start, possession_type, paint_touches, shot_clock, shot_clock_pt,
			points_scored, drill_labels)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING possession_id
	`

	var id int64
	err := tx.QueryRowContext(ctx, query,
		p.SeasonID, p.GameID, p.PracticeID, p.PossessionSide, p.TimeSegment,
		p.PossessionStart, p.PossessionType, p.PaintTouches, p.ShotClock, p.ShotClockPT,
		p.PointsScored, p.DrillLabels,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting possession: %w", err)
	}
	return id, nil
}

// AttachPlayer links a roster player to a possession.
func (r *PossessionRepository) AttachPlayer(ctx context.Context, tx *sql.Tx, possessionID, playerID int64) error {
	query := `INSERT INTO possession_players (possession_id, player_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query, possessionID, playerID); err != nil {
		return fmt.Errorf("attaching possession player: %w", err)
	}
	return nil
}

// AttachEvent records one raw event label on a possession.
func (r *PossessionRepository) AttachEvent(ctx context.Context, tx *sql.Tx, possessionID int64, eventType string) error {
	query := `INSERT INTO possession_events (possession_id, event_type) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, query, possessionID, eventType); err != nil {
		return fmt.Errorf("attaching possession event: %w", err)
	}
	return nil
}

// DeleteForGame removes all possessions from a previous parse of the game.
// Players and events go with them via cascade.
func (r *PossessionRepository) DeleteForGame(ctx context.Context, tx *sql.Tx, gameID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM possessions WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("deleting possessions for game %d: %w", gameID, err)
	}
	return nil
}

// DeleteForPractice removes all possessions from a previous parse of the
// practice.
func (r *PossessionRepository) DeleteForPractice(ctx context.Context, tx *sql.Tx, practiceID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM possessions WHERE practice_id = $1`, practiceID); err != nil {
		return fmt.Errorf("deleting possessions for practice %d: %w", practiceID, err)
	}
	return nil
}

// GamePossessionSummary counts true possessions and points for one game
// segment, restricted to possessions a player was on the floor for when
// playerID is nonzero. Raw rows include offensive rebound continuations
// and neutral rows, so those are subtracted from the run count; points
// keep every row's contribution.
func (r *PossessionRepository) GamePossessionSummary(ctx context.Context, gameID int64, segment string, playerID int64) (cooe.Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM possession_events e
				WHERE e.possession_id = p.possession_id AND e.event_type = 'Neutral')),
			COUNT(*) FILTER (WHERE EXISTS (
				SELECT 1 FROM possession_events e
				WHERE e.possession_id = p.possession_id AND e.event_type = 'Off Reb')),
			COALESCE(SUM(p.points_scored), 0)
		FROM possessions p
		WHERE p.game_id = $1
			AND LOWER(p.time_segment) = LOWER($2)
			AND ($3 = 0 OR EXISTS (
				SELECT 1 FROM possession_players pp
				WHERE pp.possession_id = p.possession_id AND pp.player_id = $3))
	`

	var runs, neutral, offReb int
	var points float64
	err := r.db.DB().QueryRowContext(ctx, query, gameID, segment, playerID).Scan(&runs, &neutral, &offReb, &points)
	if err != nil {
		return cooe.Summary{}, fmt.Errorf("querying possession summary: %w", err)
	}

	possessions := runs - neutral - offReb
	if possessions < 0 {
		possessions = 0
	}
	return cooe.Summary{Possessions: possessions, Points: points}, nil
}
