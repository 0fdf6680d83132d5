package store

import (
	"database/sql"
	"time"
)

// Season is one team season. Every other row hangs off a season so a new
// year starts from a clean slate.
type Season struct {
	SeasonID  int64     `json:"season_id" db:"season_id"`
	Name      string    `json:"name" db:"name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RosterPlayer is one player on a season's roster. PlayerName carries the
// jersey-prefixed form used as a column header in the exports ("#12 John
// Doe"), which is the join key for everything parsed out of a CSV.
type RosterPlayer struct {
	RosterID     int64          `json:"roster_id" db:"roster_id"`
	SeasonID     int64          `json:"season_id" db:"season_id"`
	PlayerName   string         `json:"player_name" db:"player_name"`
	JerseyNumber sql.NullString `json:"jersey_number,omitempty" db:"jersey_number"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	ClassYear    sql.NullString `json:"class_year,omitempty" db:"class_year"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Game is one opponent game. CSVFilename identifies the export so re-uploads
// of the same file reuse the row instead of duplicating it.
type Game struct {
	GameID      int64          `json:"game_id" db:"game_id"`
	SeasonID    int64          `json:"season_id" db:"season_id"`
	GameDate    time.Time      `json:"game_date" db:"game_date"`
	Opponent    string         `json:"opponent" db:"opponent"`
	HomeOrAway  string         `json:"home_or_away" db:"home_or_away"`
	Result      sql.NullString `json:"result,omitempty" db:"result"`
	CSVFilename string         `json:"csv_filename" db:"csv_filename"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Practice is one practice session. The (season, category, date) triple is
// the identity re-parses look up; parsing never creates one.
type Practice struct {
	PracticeID int64     `json:"practice_id" db:"practice_id"`
	SeasonID   int64     `json:"season_id" db:"season_id"`
	Category   string    `json:"category" db:"category"`
	Date       time.Time `json:"date" db:"date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// PlayerStats is one player's full stat line for one game or one practice.
// Exactly one of GameID/PracticeID is set. ShotTypeDetails and StatDetails
// hold the JSON-serialized shot and event records.
type PlayerStats struct {
	ID         int64         `json:"id" db:"id"`
	SeasonID   int64         `json:"season_id" db:"season_id"`
	GameID     sql.NullInt64 `json:"game_id,omitempty" db:"game_id"`
	PracticeID sql.NullInt64 `json:"practice_id,omitempty" db:"practice_id"`
	PlayerName string        `json:"player_name" db:"player_name"`

	Points        int `json:"points" db:"points"`
	Assists       int `json:"assists" db:"assists"`
	PotAssists    int `json:"pot_assists" db:"pot_assists"`
	SecondAssists int `json:"second_assists" db:"second_assists"`
	Turnovers     int `json:"turnovers" db:"turnovers"`

	ATRMakes    int `json:"atr_makes" db:"atr_makes"`
	ATRAttempts int `json:"atr_attempts" db:"atr_attempts"`
	FG2Makes    int `json:"fg2_makes" db:"fg2_makes"`
	FG2Attempts int `json:"fg2_attempts" db:"fg2_attempts"`
	FG3Makes    int `json:"fg3_makes" db:"fg3_makes"`
	FG3Attempts int `json:"fg3_attempts" db:"fg3_attempts"`
	FTM         int `json:"ftm" db:"ftm"`
	FTA         int `json:"fta" db:"fta"`

	FoulBy int `json:"foul_by" db:"foul_by"`

	ContestFront  int `json:"contest_front" db:"contest_front"`
	ContestSide   int `json:"contest_side" db:"contest_side"`
	ContestBehind int `json:"contest_behind" db:"contest_behind"`
	ContestLate   int `json:"contest_late" db:"contest_late"`
	ContestEarly  int `json:"contest_early" db:"contest_early"`
	ContestNo     int `json:"contest_no" db:"contest_no"`

	BumpPositive int `json:"bump_positive" db:"bump_positive"`
	BumpMissed   int `json:"bump_missed" db:"bump_missed"`

	BlowbyTotal        int `json:"blowby_total" db:"blowby_total"`
	BlowbyTripleThreat int `json:"blowby_triple_threat" db:"blowby_triple_threat"`
	BlowbyCloseout     int `json:"blowby_closeout" db:"blowby_closeout"`
	BlowbyIsolation    int `json:"blowby_isolation" db:"blowby_isolation"`

	CrashPositive   int `json:"crash_positive" db:"crash_positive"`
	CrashMissed     int `json:"crash_missed" db:"crash_missed"`
	BackManPositive int `json:"back_man_positive" db:"back_man_positive"`
	BackManMissed   int `json:"back_man_missed" db:"back_man_missed"`
	BoxOutPositive  int `json:"box_out_positive" db:"box_out_positive"`
	BoxOutMissed    int `json:"box_out_missed" db:"box_out_missed"`
	OffRebGivenUp   int `json:"off_reb_given_up" db:"off_reb_given_up"`

	CollisionGapPositive int `json:"collision_gap_positive" db:"collision_gap_positive"`
	CollisionGapMissed   int `json:"collision_gap_missed" db:"collision_gap_missed"`
	PassContestPositive  int `json:"pass_contest_positive" db:"pass_contest_positive"`
	PassContestMissed    int `json:"pass_contest_missed" db:"pass_contest_missed"`
	PnrGapPositive       int `json:"pnr_gap_positive" db:"pnr_gap_positive"`
	PnrGapMissed         int `json:"pnr_gap_missed" db:"pnr_gap_missed"`
	LowHelpPositive      int `json:"low_help_positive" db:"low_help_positive"`
	LowHelpMissed        int `json:"low_help_missed" db:"low_help_missed"`

	CloseWindowPositive int `json:"close_window_positive" db:"close_window_positive"`
	CloseWindowMissed   int `json:"close_window_missed" db:"close_window_missed"`
	ShutDoorPositive    int `json:"shut_door_positive" db:"shut_door_positive"`
	ShutDoorMissed      int `json:"shut_door_missed" db:"shut_door_missed"`

	ATRContestAttempts   int `json:"atr_contest_attempts" db:"atr_contest_attempts"`
	ATRContestMakes      int `json:"atr_contest_makes" db:"atr_contest_makes"`
	ATRLateAttempts      int `json:"atr_late_attempts" db:"atr_late_attempts"`
	ATRLateMakes         int `json:"atr_late_makes" db:"atr_late_makes"`
	ATRNoContestAttempts int `json:"atr_no_contest_attempts" db:"atr_no_contest_attempts"`
	ATRNoContestMakes    int `json:"atr_no_contest_makes" db:"atr_no_contest_makes"`
	FG2ContestAttempts   int `json:"fg2_contest_attempts" db:"fg2_contest_attempts"`
	FG2ContestMakes      int `json:"fg2_contest_makes" db:"fg2_contest_makes"`
	FG2LateAttempts      int `json:"fg2_late_attempts" db:"fg2_late_attempts"`
	FG2LateMakes         int `json:"fg2_late_makes" db:"fg2_late_makes"`
	FG2NoContestAttempts int `json:"fg2_no_contest_attempts" db:"fg2_no_contest_attempts"`
	FG2NoContestMakes    int `json:"fg2_no_contest_makes" db:"fg2_no_contest_makes"`
	FG3ContestAttempts   int `json:"fg3_contest_attempts" db:"fg3_contest_attempts"`
	FG3ContestMakes      int `json:"fg3_contest_makes" db:"fg3_contest_makes"`
	FG3LateAttempts      int `json:"fg3_late_attempts" db:"fg3_late_attempts"`
	FG3LateMakes         int `json:"fg3_late_makes" db:"fg3_late_makes"`
	FG3NoContestAttempts int `json:"fg3_no_contest_attempts" db:"fg3_no_contest_attempts"`
	FG3NoContestMakes    int `json:"fg3_no_contest_makes" db:"fg3_no_contest_makes"`

	PracticeWins   int `json:"practice_wins" db:"practice_wins"`
	PracticeLosses int `json:"practice_losses" db:"practice_losses"`
	SprintWins     int `json:"sprint_wins" db:"sprint_wins"`
	SprintLosses   int `json:"sprint_losses" db:"sprint_losses"`

	TeamOffRebOn int `json:"team_off_reb_on" db:"team_off_reb_on"`
	TeamMissesOn int `json:"team_misses_on" db:"team_misses_on"`

	ShotTypeDetails sql.NullString `json:"shot_type_details,omitempty" db:"shot_type_details"`
	StatDetails     sql.NullString `json:"stat_details,omitempty" db:"stat_details"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamStats is one side's team box score for a game. IsOpponent
// distinguishes our row from the opponent's.
type TeamStats struct {
	ID         int64 `json:"id" db:"id"`
	SeasonID   int64 `json:"season_id" db:"season_id"`
	GameID     int64 `json:"game_id" db:"game_id"`
	IsOpponent bool  `json:"is_opponent" db:"is_opponent"`

	TotalPoints        int `json:"total_points" db:"total_points"`
	TotalAssists       int `json:"total_assists" db:"total_assists"`
	TotalSecondAssists int `json:"total_second_assists" db:"total_second_assists"`
	TotalPotAssists    int `json:"total_pot_assists" db:"total_pot_assists"`
	TotalTurnovers     int `json:"total_turnovers" db:"total_turnovers"`
	TotalATRMakes      int `json:"total_atr_makes" db:"total_atr_makes"`
	TotalATRAttempts   int `json:"total_atr_attempts" db:"total_atr_attempts"`
	TotalFG2Makes      int `json:"total_fg2_makes" db:"total_fg2_makes"`
	TotalFG2Attempts   int `json:"total_fg2_attempts" db:"total_fg2_attempts"`
	TotalFG3Makes      int `json:"total_fg3_makes" db:"total_fg3_makes"`
	TotalFG3Attempts   int `json:"total_fg3_attempts" db:"total_fg3_attempts"`
	TotalFTM           int `json:"total_ftm" db:"total_ftm"`
	TotalFTA           int `json:"total_fta" db:"total_fta"`

	TotalBlueCollar  float64 `json:"total_blue_collar" db:"total_blue_collar"`
	TotalPossessions int     `json:"total_possessions" db:"total_possessions"`
	TotalOffReb      int     `json:"total_off_reb" db:"total_off_reb"`

	AssistPct   float64 `json:"assist_pct" db:"assist_pct"`
	TurnoverPct float64 `json:"turnover_pct" db:"turnover_pct"`
	TCRPct      float64 `json:"tcr_pct" db:"tcr_pct"`
	OrebPct     float64 `json:"oreb_pct" db:"oreb_pct"`
	FTRate      float64 `json:"ft_rate" db:"ft_rate"`
	GoodShotPct float64 `json:"good_shot_pct" db:"good_shot_pct"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BlueCollarStats is one weighted hustle line, per player for our side or
// the single opponent aggregate when PlayerID is null.
type BlueCollarStats struct {
	ID         int64         `json:"id" db:"id"`
	SeasonID   int64         `json:"season_id" db:"season_id"`
	GameID     sql.NullInt64 `json:"game_id,omitempty" db:"game_id"`
	PracticeID sql.NullInt64 `json:"practice_id,omitempty" db:"practice_id"`
	PlayerID   sql.NullInt64 `json:"player_id,omitempty" db:"player_id"`
	IsOpponent bool          `json:"is_opponent" db:"is_opponent"`

	TotalBlueCollar float64 `json:"total_blue_collar" db:"total_blue_collar"`
	RebTip          int     `json:"reb_tip" db:"reb_tip"`
	DefReb          int     `json:"def_reb" db:"def_reb"`
	Misc            int     `json:"misc" db:"misc"`
	Deflection      int     `json:"deflection" db:"deflection"`
	Steal           int     `json:"steal" db:"steal"`
	Block           int     `json:"block" db:"block"`
	OffReb          int     `json:"off_reb" db:"off_reb"`
	FloorDive       int     `json:"floor_dive" db:"floor_dive"`
	ChargeTaken     int     `json:"charge_taken" db:"charge_taken"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Possession is one stored possession row. PossessionSide is the team label
// (Offense/Defense for games, squad color for practices); TimeSegment is
// always the side of the ball.
type Possession struct {
	PossessionID    int64          `json:"possession_id" db:"possession_id"`
	SeasonID        int64          `json:"season_id" db:"season_id"`
	GameID          sql.NullInt64  `json:"game_id,omitempty" db:"game_id"`
	PracticeID      sql.NullInt64  `json:"practice_id,omitempty" db:"practice_id"`
	PossessionSide  string         `json:"possession_side" db:"possession_side"`
	TimeSegment     string         `json:"time_segment" db:"time_segment"`
	PossessionStart sql.NullString `json:"possession_start,omitempty" db:"possession_start"`
	PossessionType  sql.NullString `json:"possession_type,omitempty" db:"possession_type"`
	PaintTouches    sql.NullString `json:"paint_touches,omitempty" db:"paint_touches"`
	ShotClock       sql.NullString `json:"shot_clock,omitempty" db:"shot_clock"`
	ShotClockPT     sql.NullString `json:"shot_clock_pt,omitempty" db:"shot_clock_pt"`
	PointsScored    int            `json:"points_scored" db:"points_scored"`
	DrillLabels     sql.NullString `json:"drill_labels,omitempty" db:"drill_labels"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

// PossessionPlayer links a possession to a roster player who was on the
// floor for it.
type PossessionPlayer struct {
	ID           int64 `json:"id" db:"id"`
	PossessionID int64 `json:"possession_id" db:"possession_id"`
	PlayerID     int64 `json:"player_id" db:"player_id"`
}

// PossessionEvent is one raw event label owned by a possession, used by the
// possession-counting SQL and drill-filtered breakdown reports.
type PossessionEvent struct {
	ID           int64  `json:"id" db:"id"`
	PossessionID int64  `json:"possession_id" db:"possession_id"`
	EventType    string `json:"event_type" db:"event_type"`
}

// UploadedFile tracks every ingested CSV so re-parses and audits know what
// produced the current numbers.
type UploadedFile struct {
	FileID     int64          `json:"file_id" db:"file_id"`
	SeasonID   int64          `json:"season_id" db:"season_id"`
	GameID     sql.NullInt64  `json:"game_id,omitempty" db:"game_id"`
	PracticeID sql.NullInt64  `json:"practice_id,omitempty" db:"practice_id"`
	FileType   string         `json:"file_type" db:"file_type"`
	Filename   string         `json:"filename" db:"filename"`
	StoredPath string         `json:"stored_path" db:"stored_path"`
	Category   sql.NullString `json:"category,omitempty" db:"category"`
	FileDate   sql.NullTime   `json:"file_date,omitempty" db:"file_date"`
	ParsedAt   sql.NullTime   `json:"parsed_at,omitempty" db:"parsed_at"`
	ParseError sql.NullString `json:"parse_error,omitempty" db:"parse_error"`
	// ParseSummary is the JSON snapshot of the parse result: breakdowns,
	// lineup efficiencies, and practice on/off splits.
	ParseSummary sql.NullString `json:"parse_summary,omitempty" db:"parse_summary"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}
