package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoopsight/courtlog/internal/store"
)

// StatsRepository handles player, team, and blue collar stat lines.
// Write methods take the caller's transaction so delete-then-insert
// reparses are atomic.
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

const playerStatsColumns = `
	season_id, game_id, practice_id, player_name,
	points, assists, pot_assists, second_assists, turnovers,
	atr_makes, atr_attempts, fg2_makes, fg2_attempts, fg3_makes, fg3_attempts, ftm, fta,
	foul_by,
	contest_front, contest_side, contest_behind, contest_late, contest_early, contest_no,
	bump_positive, bump_missed,
	blowby_total, blowby_triple_threat, blowby_closeout, blowby_isolation,
	crash_positive, crash_missed, back_man_positive, back_man_missed,
	box_out_positive, box_out_missed, off_reb_given_up,
	collision_gap_positive, collision_gap_missed, pass_contest_positive, pass_contest_missed,
	pnr_gap_positive, pnr_gap_missed, low_help_positive, low_help_missed,
	close_window_positive, close_window_missed, shut_door_positive, shut_door_missed,
	atr_contest_attempts, atr_contest_makes, atr_late_attempts, atr_late_makes,
	atr_no_contest_attempts, atr_no_contest_makes,
	fg2_contest_attempts, fg2_contest_makes, fg2_late_attempts, fg2_late_makes,
	fg2_no_contest_attempts, fg2_no_contest_makes,
	fg3_contest_attempts, fg3_contest_makes, fg3_late_attempts, fg3_late_makes,
	fg3_no_contest_attempts, fg3_no_contest_makes,
	practice_wins, practice_losses, sprint_wins, sprint_losses,
	team_off_reb_on, team_misses_on,
	shot_type_details, stat_details`

const playerStatsPlaceholders = `
	$1, $2, $3, $4,
	$5, $6, $7, $8, $9,
	$10, $11, $12, $13, $14, $15, $16, $17,
	$18,
	$19, $20, $21, $22, $23, $24,
	$25, $26,
	$27, $28, $29, $30,
	$31, $32, $33, $34,
	$35, $36, $37,
	$38, $39, $40, $41,
	$42, $43, $44, $45,
	$46, $47, $48, $49,
	$50, $51, $52, $53,
	$54, $55,
	$56, $57, $58, $59,
	$60, $61,
	$62, $63, $64, $65,
	$66, $67,
	$68, $69, $70, $71,
	$72, $73,
	$74, $75`

func playerStatsArgs(s *store.PlayerStats) []any {
	return []any{
		s.SeasonID, s.GameID, s.PracticeID, s.PlayerName,
		s.Points, s.Assists, s.PotAssists, s.SecondAssists, s.Turnovers,
		s.ATRMakes, s.ATRAttempts, s.FG2Makes, s.FG2Attempts, s.FG3Makes, s.FG3Attempts, s.FTM, s.FTA,
		s.FoulBy,
		s.ContestFront, s.ContestSide, s.ContestBehind, s.ContestLate, s.ContestEarly, s.ContestNo,
		s.BumpPositive, s.BumpMissed,
		s.BlowbyTotal, s.BlowbyTripleThreat, s.BlowbyCloseout, s.BlowbyIsolation,
		s.CrashPositive, s.CrashMissed, s.BackManPositive, s.BackManMissed,
		s.BoxOutPositive, s.BoxOutMissed, s.OffRebGivenUp,
		s.CollisionGapPositive, s.CollisionGapMissed, s.PassContestPositive, s.PassContestMissed,
		s.PnrGapPositive, s.PnrGapMissed, s.LowHelpPositive, s.LowHelpMissed,
		s.CloseWindowPositive, s.CloseWindowMissed, s.ShutDoorPositive, s.ShutDoorMissed,
		s.ATRContestAttempts, s.ATRContestMakes, s.ATRLateAttempts, s.ATRLateMakes,
		s.ATRNoContestAttempts, s.ATRNoContestMakes,
		s.FG2ContestAttempts, s.FG2ContestMakes, s.FG2LateAttempts, s.FG2LateMakes,
		s.FG2NoContestAttempts, s.FG2NoContestMakes,
		s.FG3ContestAttempts, s.FG3ContestMakes, s.FG3LateAttempts, s.FG3LateMakes,
		s.FG3NoContestAttempts, s.FG3NoContestMakes,
		s.PracticeWins, s.PracticeLosses, s.SprintWins, s.SprintLosses,
		s.TeamOffRebOn, s.TeamMissesOn,
		s.ShotTypeDetails, s.StatDetails,
	}
}

func scanPlayerStats(rows *sql.Rows) (*store.PlayerStats, error) {
	s := &store.PlayerStats{}
	err := rows.Scan(
		&s.ID,
		&s.SeasonID, &s.GameID, &s.PracticeID, &s.PlayerName,
		&s.Points, &s.Assists, &s.PotAssists, &s.SecondAssists, &s.Turnovers,
		&s.ATRMakes, &s.ATRAttempts, &s.FG2Makes, &s.FG2Attempts, &s.FG3Makes, &s.FG3Attempts, &s.FTM, &s.FTA,
		&s.FoulBy,
		&s.ContestFront, &s.ContestSide, &s.ContestBehind, &s.ContestLate, &s.ContestEarly, &s.ContestNo,
		&s.BumpPositive, &s.BumpMissed,
		&s.BlowbyTotal, &s.BlowbyTripleThreat, &s.BlowbyCloseout, &s.BlowbyIsolation,
		&s.CrashPositive, &s.CrashMissed, &s.BackManPositive, &s.BackManMissed,
		&s.BoxOutPositive, &s.BoxOutMissed, &s.OffRebGivenUp,
		&s.CollisionGapPositive, &s.CollisionGapMissed, &s.PassContestPositive, &s.PassContestMissed,
		&s.PnrGapPositive, &s.PnrGapMissed, &s.LowHelpPositive, &s.LowHelpMissed,
		&s.CloseWindowPositive, &s.CloseWindowMissed, &s.ShutDoorPositive, &s.ShutDoorMissed,
		&s.ATRContestAttempts, &s.ATRContestMakes, &s.ATRLateAttempts, &s.ATRLateMakes,
		&s.ATRNoContestAttempts, &s.ATRNoContestMakes,
		&s.FG2ContestAttempts, &s.FG2ContestMakes, &s.FG2LateAttempts, &s.FG2LateMakes,
		&s.FG2NoContestAttempts, &s.FG2NoContestMakes,
		&s.FG3ContestAttempts, &s.FG3ContestMakes, &s.FG3LateAttempts, &s.FG3LateMakes,
		&s.FG3NoContestAttempts, &s.FG3NoContestMakes,
		&s.PracticeWins, &s.PracticeLosses, &s.SprintWins, &s.SprintLosses,
		&s.TeamOffRebOn, &s.TeamMissesOn,
		&s.ShotTypeDetails, &s.StatDetails,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning player stats: %w", err)
	}
	return s, nil
}

// InsertPlayerStats inserts one player stat line inside the caller's
// transaction.
func (r *StatsRepository) InsertPlayerStats(ctx context.Context, tx *sql.Tx, s *store.PlayerStats) error {
	query := `INSERT INTO player_stats (` + playerStatsColumns + `) VALUES (` + playerStatsPlaceholders + `)`
	if _, err := tx.ExecContext(ctx, query, playerStatsArgs(s)...); err != nil {
		return fmt.Errorf("inserting player stats for %q: %w", s.PlayerName, err)
	}
	return nil
}

// InsertTeamStats inserts one team box score row inside the caller's
// transaction.
func (r *StatsRepository) InsertTeamStats(ctx context.Context, tx *sql.Tx, s *store.TeamStats) error {
	query := `
		INSERT INTO team_stats (season_id, game_id, is_opponent,
			total_points, total_assists, total_second_assists, total_pot_assists, total_turnovers,
			total_atr_makes, total_atr_attempts, total_fg2_makes, total_fg2_attempts,
			total_fg3_makes, total_fg3_attempts, total_ftm, total_fta,
			total_blue_collar, total_possessions, total_off_reb,
			assist_pct, turnover_pct, tcr_pct, oreb_pct, ft_rate, good_shot_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := tx.ExecContext(ctx, query,
		s.SeasonID, s.GameID, s.IsOpponent,
		s.TotalPoints, s.TotalAssists, s.TotalSecondAssists, s.TotalPotAssists, s.TotalTurnovers,
		s.TotalATRMakes, s.TotalATRAttempts, s.TotalFG2Makes, s.TotalFG2Attempts,
		s.TotalFG3Makes, s.TotalFG3Attempts, s.TotalFTM, s.TotalFTA,
		s.TotalBlueCollar, s.TotalPossessions, s.TotalOffReb,
		s.AssistPct, s.TurnoverPct, s.TCRPct, s.OrebPct, s.FTRate, s.GoodShotPct,
	)
	if err != nil {
		return fmt.Errorf("inserting team stats: %w", err)
	}
	return nil
}

// InsertBlueCollar inserts one blue collar line inside the caller's
// transaction.
func (r *StatsRepository) InsertBlueCollar(ctx context.Context, tx *sql.Tx, s *store.BlueCollarStats) error {
	query := `
		INSERT INTO blue_collar_stats (season_id, game_id, practice_id, player_id, is_opponent,
			total_blue_collar, reb_tip, def_reb, misc, deflection, steal, block,
			off_reb, floor_dive, charge_taken)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := tx.ExecContext(ctx, query,
		s.SeasonID, s.GameID, s.PracticeID, s.PlayerID, s.IsOpponent,
		s.TotalBlueCollar, s.RebTip, s.DefReb, s.Misc, s.Deflection, s.Steal, s.Block,
		s.OffReb, s.FloorDive, s.ChargeTaken,
	)
	if err != nil {
		return fmt.Errorf("inserting blue collar stats: %w", err)
	}
	return nil
}

// DeleteForGame removes every stat line a previous parse of the game wrote.
func (r *StatsRepository) DeleteForGame(ctx context.Context, tx *sql.Tx, gameID int64) error {
	for _, table := range []string{"player_stats", "team_stats", "blue_collar_stats"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE game_id = $1", table)
		if _, err := tx.ExecContext(ctx, query, gameID); err != nil {
			return fmt.Errorf("deleting %s for game %d: %w", table, gameID, err)
		}
	}
	return nil
}

// DeleteForPractice removes every stat line a previous parse of the
// practice wrote.
func (r *StatsRepository) DeleteForPractice(ctx context.Context, tx *sql.Tx, practiceID int64) error {
	for _, table := range []string{"player_stats", "blue_collar_stats"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE practice_id = $1", table)
		if _, err := tx.ExecContext(ctx, query, practiceID); err != nil {
			return fmt.Errorf("deleting %s for practice %d: %w", table, practiceID, err)
		}
	}
	return nil
}

// ListBySeason returns every player stat line in a season, games when
// fileType is "game", practices when "practice".
func (r *StatsRepository) ListBySeason(ctx context.Context, seasonID int64, fileType string) ([]*store.PlayerStats, error) {
	where := "season_id = $1 AND game_id IS NOT NULL"
	if fileType == "practice" {
		where = "season_id = $1 AND practice_id IS NOT NULL"
	}

	query := `SELECT id, ` + playerStatsColumns + `, created_at FROM player_stats WHERE ` + where + ` ORDER BY player_name`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying season player stats: %w", err)
	}
	defer rows.Close()

	var stats []*store.PlayerStats
	for rows.Next() {
		s, err := scanPlayerStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetTeamStats returns both team box rows for a game.
func (r *StatsRepository) GetTeamStats(ctx context.Context, gameID int64) ([]*store.TeamStats, error) {
	query := `
		SELECT id, season_id, game_id, is_opponent,
			total_points, total_assists, total_second_assists, total_pot_assists, total_turnovers,
			total_atr_makes, total_atr_attempts, total_fg2_makes, total_fg2_attempts,
			total_fg3_makes, total_fg3_attempts, total_ftm, total_fta,
			total_blue_collar, total_possessions, total_off_reb,
			assist_pct, turnover_pct, tcr_pct, oreb_pct, ft_rate, good_shot_pct, created_at
		FROM team_stats
		WHERE game_id = $1
		ORDER BY is_opponent
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}
	defer rows.Close()

	var stats []*store.TeamStats
	for rows.Next() {
		s := &store.TeamStats{}
		if err := rows.Scan(
			&s.ID, &s.SeasonID, &s.GameID, &s.IsOpponent,
			&s.TotalPoints, &s.TotalAssists, &s.TotalSecondAssists, &s.TotalPotAssists, &s.TotalTurnovers,
			&s.TotalATRMakes, &s.TotalATRAttempts, &s.TotalFG2Makes, &s.TotalFG2Attempts,
			&s.TotalFG3Makes, &s.TotalFG3Attempts, &s.TotalFTM, &s.TotalFTA,
			&s.TotalBlueCollar, &s.TotalPossessions, &s.TotalOffReb,
			&s.AssistPct, &s.TurnoverPct, &s.TCRPct, &s.OrebPct, &s.FTRate, &s.GoodShotPct, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning team stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
