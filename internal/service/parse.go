package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoopsight/courtlog/internal/cache"
	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
	"github.com/hoopsight/courtlog/internal/lineup"
	"github.com/hoopsight/courtlog/internal/publisher"
	"github.com/hoopsight/courtlog/internal/reconciliation"
	"github.com/hoopsight/courtlog/internal/store"
	"github.com/hoopsight/courtlog/internal/store/repository"
)

// ParseService turns event-log CSV exports into persisted stat lines and
// possessions. Each parse is a single transaction that deletes whatever a
// previous parse of the same file wrote, so re-uploads are idempotent.
type ParseService struct {
	db          *store.Database
	games       *repository.GameRepository
	practices   *repository.PracticeRepository
	rosters     *repository.RosterRepository
	stats       *repository.StatsRepository
	possessions *repository.PossessionRepository
	cache       *cache.RedisCache
	publisher   *publisher.RedisStreamPublisher
}

// NewParseService creates a parse service. Cache and publisher may be nil;
// parsing still works without them.
func NewParseService(db *store.Database, rc *cache.RedisCache, pub *publisher.RedisStreamPublisher) *ParseService {
	return &ParseService{
		db:          db,
		games:       repository.NewGameRepository(db),
		practices:   repository.NewPracticeRepository(db),
		rosters:     repository.NewRosterRepository(db),
		stats:       repository.NewStatsRepository(db),
		possessions: repository.NewPossessionRepository(db),
		cache:       rc,
		publisher:   pub,
	}
}

// GameParseResult is everything one game parse produces, returned to the
// caller after it has been persisted.
type GameParseResult struct {
	GameID               int64                       `json:"game_id"`
	Players              map[string]*sportscode.PlayerLine `json:"players"`
	Team                 sportscode.TeamTotals       `json:"team"`
	Opponent             sportscode.OpponentTotals   `json:"opponent"`
	OffensivePossessions int                         `json:"offensive_possessions"`
	DefensivePossessions int                         `json:"defensive_possessions"`
	Breakdowns           sportscode.GameBreakdowns   `json:"breakdowns"`
	LineupEfficiencies   lineup.Efficiencies         `json:"lineup_efficiencies"`
}

// PracticeParseResult is everything one practice parse produces.
type PracticeParseResult struct {
	PracticeID         int64                             `json:"practice_id"`
	Players            map[string]*sportscode.PlayerLine `json:"players"`
	PossessionCount    int                               `json:"possession_count"`
	LineupEfficiencies lineup.Efficiencies               `json:"lineup_efficiencies"`
	PlayerOnOff        map[string]map[string]lineup.OnOff `json:"player_on_off"`
}

// ParseGameFile parses one game export and replaces everything stored for
// it. The game row is found by filename, or created when this is the first
// upload of the file.
func (s *ParseService) ParseGameFile(ctx context.Context, seasonID int64, path, opponent string, gameDate time.Time) (*GameParseResult, error) {
	table, err := sportscode.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("reading game csv: %w", err)
	}

	result, err := sportscode.ParseGame(table)
	if err != nil {
		return nil, fmt.Errorf("parsing game csv: %w", err)
	}

	filename := filepath.Base(path)
	if report := reconciliation.CheckGame(result); !report.Clean() {
		log.Warn().Str("filename", filename).Str("conflicts", report.Summary()).Msg("Box score and possession ledger disagree")
	}

	roster, err := s.rosters.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if dropped := dropUnrostered(result.Players, result.Possessions, roster); len(dropped) > 0 {
		log.Debug().Str("filename", filename).Strs("players", dropped).Msg("Skipped unrostered columns")
	}

	game, err := s.games.GetByCSVFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if game == nil {
		gameID, err := s.games.Create(ctx, &store.Game{
			SeasonID:    seasonID,
			GameDate:    gameDate,
			Opponent:    opponent,
			HomeOrAway:  "Home",
			CSVFilename: filename,
		})
		if err != nil {
			return nil, err
		}
		game = &store.Game{GameID: gameID, SeasonID: seasonID}
	}

	tx, err := s.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning game transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.stats.DeleteForGame(ctx, tx, game.GameID); err != nil {
		return nil, err
	}
	if err := s.possessions.DeleteForGame(ctx, tx, game.GameID); err != nil {
		return nil, err
	}

	gameRef := sql.NullInt64{Int64: game.GameID, Valid: true}
	for _, line := range result.Players {
		ps, err := playerLineToStats(seasonID, gameRef, sql.NullInt64{}, line)
		if err != nil {
			return nil, err
		}
		if err := s.stats.InsertPlayerStats(ctx, tx, ps); err != nil {
			return nil, err
		}
		if err := s.insertPlayerBlueCollar(ctx, tx, seasonID, gameRef, sql.NullInt64{}, line); err != nil {
			return nil, err
		}
	}

	if err := s.stats.InsertTeamStats(ctx, tx, teamTotalsToStats(seasonID, game.GameID, result)); err != nil {
		return nil, err
	}
	if err := s.stats.InsertTeamStats(ctx, tx, opponentTotalsToStats(seasonID, game.GameID, result)); err != nil {
		return nil, err
	}

	oppBlue := blueCollarToStats(seasonID, gameRef, sql.NullInt64{}, sql.NullInt64{}, &result.OpponentBlue)
	oppBlue.IsOpponent = true
	if err := s.stats.InsertBlueCollar(ctx, tx, oppBlue); err != nil {
		return nil, err
	}

	if err := s.persistPossessions(ctx, tx, seasonID, gameRef, sql.NullInt64{}, result.Possessions); err != nil {
		return nil, err
	}
	if err := s.games.Touch(ctx, tx, game.GameID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing game parse: %w", err)
	}

	s.afterParse(ctx, seasonID, publisher.ParseEvent{
		SeasonID: seasonID,
		FileType: "game",
		Filename: filename,
		GameID:   game.GameID,
	})

	return &GameParseResult{
		GameID:               game.GameID,
		Players:              result.Players,
		Team:                 result.Team,
		Opponent:             result.Opponent,
		OffensivePossessions: result.OffensivePossessions,
		DefensivePossessions: result.DefensivePossessions,
		Breakdowns:           result.Breakdowns,
		LineupEfficiencies:   lineup.Compute(lineupPossessions(result.Possessions), lineup.DefaultGroupSizes, lineup.GameMinPossessions),
	}, nil
}

// ReparseGameFile re-runs the parser over a game export that was already
// ingested. The game row must still exist; a reparse refuses to create one,
// so a deleted game cannot silently reappear with an empty opponent.
func (s *ParseService) ReparseGameFile(ctx context.Context, seasonID int64, path string) (*GameParseResult, error) {
	filename := filepath.Base(path)
	game, err := s.games.GetByCSVFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if err := requireExistingGame(game, filename); err != nil {
		return nil, err
	}
	return s.ParseGameFile(ctx, seasonID, path, game.Opponent, game.GameDate)
}

func requireExistingGame(game *store.Game, filename string) error {
	if game == nil {
		return fmt.Errorf("no existing game for %q; refusing to create one on reparse", filename)
	}
	return nil
}

// ParsePracticeFile parses one practice export. The practice session must
// already exist for the (season, category, date) tuple; parsing never
// creates one.
func (s *ParseService) ParsePracticeFile(ctx context.Context, seasonID int64, path, category string, date time.Time) (*PracticeParseResult, error) {
	table, err := sportscode.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("reading practice csv: %w", err)
	}

	result, err := sportscode.ParsePractice(table)
	if err != nil {
		return nil, fmt.Errorf("parsing practice csv: %w", err)
	}

	if report := reconciliation.CheckPractice(result); !report.Clean() {
		log.Warn().Str("file", filepath.Base(path)).Str("conflicts", report.Summary()).Msg("Possession ledger disagrees with player lines")
	}

	roster, err := s.rosters.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if dropped := dropUnrostered(result.Players, result.Possessions, roster); len(dropped) > 0 {
		log.Debug().Str("filename", filepath.Base(path)).Strs("players", dropped).Msg("Skipped unrostered columns")
	}

	category = sportscode.NormalizeCategory(category)
	practice, err := s.practices.Find(ctx, seasonID, category, date)
	if err != nil {
		return nil, err
	}
	if practice == nil {
		return nil, fmt.Errorf("no practice session for %s on %s; create the session before uploading",
			category, date.Format("2006-01-02"))
	}

	tx, err := s.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning practice transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.stats.DeleteForPractice(ctx, tx, practice.PracticeID); err != nil {
		return nil, err
	}
	if err := s.possessions.DeleteForPractice(ctx, tx, practice.PracticeID); err != nil {
		return nil, err
	}

	practiceRef := sql.NullInt64{Int64: practice.PracticeID, Valid: true}
	for _, line := range result.Players {
		ps, err := playerLineToStats(seasonID, sql.NullInt64{}, practiceRef, line)
		if err != nil {
			return nil, err
		}
		if err := s.stats.InsertPlayerStats(ctx, tx, ps); err != nil {
			return nil, err
		}
		if err := s.insertPlayerBlueCollar(ctx, tx, seasonID, sql.NullInt64{}, practiceRef, line); err != nil {
			return nil, err
		}
	}

	if err := s.persistPossessions(ctx, tx, seasonID, sql.NullInt64{}, practiceRef, result.Possessions); err != nil {
		return nil, err
	}
	if err := s.practices.Touch(ctx, tx, practice.PracticeID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing practice parse: %w", err)
	}

	s.afterParse(ctx, seasonID, publisher.ParseEvent{
		SeasonID:   seasonID,
		FileType:   "practice",
		Filename:   filepath.Base(path),
		PracticeID: practice.PracticeID,
	})

	poss := lineupPossessions(result.Possessions)
	return &PracticeParseResult{
		PracticeID:         practice.PracticeID,
		Players:            result.Players,
		PossessionCount:    len(result.Possessions),
		LineupEfficiencies: lineup.Compute(poss, lineup.DefaultGroupSizes, lineup.PracticeMinPossessions),
		PlayerOnOff:        lineup.ComputeOnOff(poss),
	}, nil
}

// afterParse runs the best-effort side effects of a successful parse. A
// cold cache or a down stream consumer must not fail the parse itself.
func (s *ParseService) afterParse(ctx context.Context, seasonID int64, event publisher.ParseEvent) {
	if s.cache != nil {
		if err := s.cache.InvalidateSeason(ctx, seasonID); err != nil {
			log.Warn().Err(err).Int64("season_id", seasonID).Msg("Failed to invalidate season cache")
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishParsed(ctx, event); err != nil {
			log.Warn().Err(err).Str("filename", event.Filename).Msg("Failed to publish parse event")
		}
	}
}

func (s *ParseService) persistPossessions(ctx context.Context, tx *sql.Tx, seasonID int64, gameID, practiceID sql.NullInt64, records []sportscode.PossessionRecord) error {
	for _, rec := range records {
		possessionID, err := s.possessions.Insert(ctx, tx, &store.Possession{
			SeasonID:        seasonID,
			GameID:          gameID,
			PracticeID:      practiceID,
			PossessionSide:  rec.Side,
			TimeSegment:     rec.Segment,
			PossessionStart: nullString(rec.PossessionStart),
			PossessionType:  nullString(rec.PossessionType),
			PaintTouches:    nullString(rec.PaintTouches),
			ShotClock:       nullString(rec.ShotClock),
			ShotClockPT:     nullString(rec.ShotClockPT),
			PointsScored:    rec.PointsScored,
			DrillLabels:     nullString(strings.Join(rec.DrillLabels, ", ")),
		})
		if err != nil {
			return err
		}

		for _, player := range rec.PlayersOnFloor {
			playerID, err := s.rosters.GetOrCreate(ctx, tx, seasonID, player)
			if err != nil {
				return err
			}
			if err := s.possessions.AttachPlayer(ctx, tx, possessionID, playerID); err != nil {
				return err
			}
		}
		for _, event := range rec.Events {
			if err := s.possessions.AttachEvent(ctx, tx, possessionID, event); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ParseService) insertPlayerBlueCollar(ctx context.Context, tx *sql.Tx, seasonID int64, gameID, practiceID sql.NullInt64, line *sportscode.PlayerLine) error {
	if line.Blue.Total() == 0 {
		return nil
	}
	playerID, err := s.rosters.GetOrCreate(ctx, tx, seasonID, line.Name)
	if err != nil {
		return err
	}
	bc := blueCollarToStats(seasonID, gameID, practiceID, sql.NullInt64{Int64: playerID, Valid: true}, &line.Blue)
	return s.stats.InsertBlueCollar(ctx, tx, bc)
}

// dropUnrostered removes player lines and on-floor names with no roster
// entry for the season. Extra guest columns in an export are skipped, never
// persisted, so a stray "#99 Walk On" cannot pollute the roster table.
// Returns the dropped names.
func dropUnrostered(players map[string]*sportscode.PlayerLine, possessions []sportscode.PossessionRecord, roster map[string]*store.RosterPlayer) []string {
	var dropped []string
	for name := range players {
		if _, ok := roster[name]; !ok {
			delete(players, name)
			dropped = append(dropped, name)
		}
	}
	for i := range possessions {
		kept := possessions[i].PlayersOnFloor[:0]
		for _, p := range possessions[i].PlayersOnFloor {
			if _, ok := roster[p]; ok {
				kept = append(kept, p)
			}
		}
		possessions[i].PlayersOnFloor = kept
	}
	return dropped
}

// lineupPossessions converts parsed possession records to the minimal view
// the lineup math wants.
func lineupPossessions(records []sportscode.PossessionRecord) []lineup.Possession {
	out := make([]lineup.Possession, 0, len(records))
	for _, rec := range records {
		out = append(out, lineup.Possession{
			Side:    rec.Side,
			Players: rec.PlayersOnFloor,
			Points:  rec.PointsScored,
		})
	}
	return out
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func playerLineToStats(seasonID int64, gameID, practiceID sql.NullInt64, line *sportscode.PlayerLine) (*store.PlayerStats, error) {
	ps := &store.PlayerStats{
		SeasonID:   seasonID,
		GameID:     gameID,
		PracticeID: practiceID,
		PlayerName: line.Name,

		Points:        line.Points,
		Assists:       line.Assists,
		PotAssists:    line.PotAssists,
		SecondAssists: line.SecondAssists,
		Turnovers:     line.Turnovers,

		ATRMakes:    line.ATRMakes,
		ATRAttempts: line.ATRAttempts,
		FG2Makes:    line.FG2Makes,
		FG2Attempts: line.FG2Attempts,
		FG3Makes:    line.FG3Makes,
		FG3Attempts: line.FG3Attempts,
		FTM:         line.FTM,
		FTA:         line.FTA,

		FoulBy: line.FoulBy,

		ContestFront:  line.ContestFront,
		ContestSide:   line.ContestSide,
		ContestBehind: line.ContestBehind,
		ContestLate:   line.ContestLate,
		ContestEarly:  line.ContestEarly,
		ContestNo:     line.ContestNo,

		BumpPositive: line.BumpPositive,
		BumpMissed:   line.BumpMissed,

		BlowbyTotal:        line.BlowbyTotal,
		BlowbyTripleThreat: line.BlowbyTripleThreat,
		BlowbyCloseout:     line.BlowbyCloseout,
		BlowbyIsolation:    line.BlowbyIsolation,

		CrashPositive:   line.CrashPositive,
		CrashMissed:     line.CrashMissed,
		BackManPositive: line.BackManPositive,
		BackManMissed:   line.BackManMissed,
		BoxOutPositive:  line.BoxOutPositive,
		BoxOutMissed:    line.BoxOutMissed,
		OffRebGivenUp:   line.OffRebGivenUp,

		CollisionGapPositive: line.CollisionGapPositive,
		CollisionGapMissed:   line.CollisionGapMissed,
		PassContestPositive:  line.PassContestPositive,
		PassContestMissed:    line.PassContestMissed,
		PnrGapPositive:       line.PnrGapPositive,
		PnrGapMissed:         line.PnrGapMissed,
		LowHelpPositive:      line.LowHelpPositive,
		LowHelpMissed:        line.LowHelpMissed,

		CloseWindowPositive: line.CloseWindowPositive,
		CloseWindowMissed:   line.CloseWindowMissed,
		ShutDoorPositive:    line.ShutDoorPositive,
		ShutDoorMissed:      line.ShutDoorMissed,

		ATRContestAttempts:   line.ContestSplits["atr_contest_attempts"],
		ATRContestMakes:      line.ContestSplits["atr_contest_makes"],
		ATRLateAttempts:      line.ContestSplits["atr_late_attempts"],
		ATRLateMakes:         line.ContestSplits["atr_late_makes"],
		ATRNoContestAttempts: line.ContestSplits["atr_no_contest_attempts"],
		ATRNoContestMakes:    line.ContestSplits["atr_no_contest_makes"],
		FG2ContestAttempts:   line.ContestSplits["fg2_contest_attempts"],
		FG2ContestMakes:      line.ContestSplits["fg2_contest_makes"],
		FG2LateAttempts:      line.ContestSplits["fg2_late_attempts"],
		FG2LateMakes:         line.ContestSplits["fg2_late_makes"],
		FG2NoContestAttempts: line.ContestSplits["fg2_no_contest_attempts"],
		FG2NoContestMakes:    line.ContestSplits["fg2_no_contest_makes"],
		FG3ContestAttempts:   line.ContestSplits["fg3_contest_attempts"],
		FG3ContestMakes:      line.ContestSplits["fg3_contest_makes"],
		FG3LateAttempts:      line.ContestSplits["fg3_late_attempts"],
		FG3LateMakes:         line.ContestSplits["fg3_late_makes"],
		FG3NoContestAttempts: line.ContestSplits["fg3_no_contest_attempts"],
		FG3NoContestMakes:    line.ContestSplits["fg3_no_contest_makes"],

		PracticeWins:   line.PracticeWins,
		PracticeLosses: line.PracticeLosses,
		SprintWins:     line.SprintWins,
		SprintLosses:   line.SprintLosses,

		TeamOffRebOn: line.TeamOffRebOn,
		TeamMissesOn: line.TeamMissesOn,
	}

	if len(line.ShotDetails) > 0 {
		data, err := json.Marshal(line.ShotDetails)
		if err != nil {
			return nil, fmt.Errorf("encoding shot details for %q: %w", line.Name, err)
		}
		ps.ShotTypeDetails = sql.NullString{String: string(data), Valid: true}
	}
	if len(line.StatDetails) > 0 {
		data, err := json.Marshal(line.StatDetails)
		if err != nil {
			return nil, fmt.Errorf("encoding stat details for %q: %w", line.Name, err)
		}
		ps.StatDetails = sql.NullString{String: string(data), Valid: true}
	}

	return ps, nil
}

func teamTotalsToStats(seasonID, gameID int64, result *sportscode.GameResult) *store.TeamStats {
	team := result.Team
	return &store.TeamStats{
		SeasonID:   seasonID,
		GameID:     gameID,
		IsOpponent: false,

		TotalPoints:        team.Points,
		TotalAssists:       team.Assists,
		TotalSecondAssists: team.SecondAssists,
		TotalPotAssists:    team.PotAssists,
		TotalTurnovers:     team.Turnovers,
		TotalATRMakes:      team.ATRMakes,
		TotalATRAttempts:   team.ATRAttempts,
		TotalFG2Makes:      team.FG2Makes,
		TotalFG2Attempts:   team.FG2Attempts,
		TotalFG3Makes:      team.FG3Makes,
		TotalFG3Attempts:   team.FG3Attempts,
		TotalFTM:           team.FTM,
		TotalFTA:           team.FTA,

		TotalBlueCollar:  team.TotalBlueCollar,
		TotalPossessions: team.Possessions,
		TotalOffReb:      team.OffRebounds,

		AssistPct:   team.AssistPct,
		TurnoverPct: team.TurnoverPct,
		TCRPct:      team.TCRPct,
		OrebPct:     team.OrebPct,
		FTRate:      team.FTRate,
		GoodShotPct: team.GoodShotPct,
	}
}

func opponentTotalsToStats(seasonID, gameID int64, result *sportscode.GameResult) *store.TeamStats {
	opp := result.Opponent
	return &store.TeamStats{
		SeasonID:   seasonID,
		GameID:     gameID,
		IsOpponent: true,

		TotalPoints:        opp.Points,
		TotalAssists:       opp.Assists,
		TotalSecondAssists: opp.SecondAssists,
		TotalPotAssists:    opp.PotAssists,
		TotalTurnovers:     opp.Turnovers,
		TotalATRMakes:      opp.ATRMakes,
		TotalATRAttempts:   opp.ATRAttempts,
		TotalFG2Makes:      opp.FG2Makes,
		TotalFG2Attempts:   opp.FG2Attempts,
		TotalFG3Makes:      opp.FG3Makes,
		TotalFG3Attempts:   opp.FG3Attempts,
		TotalFTM:           opp.FTM,
		TotalFTA:           opp.FTA,

		TotalBlueCollar:  opp.TotalBlueCollar,
		TotalPossessions: opp.Possessions,
		TotalOffReb:      opp.Blue.OffReb,
	}
}

func blueCollarToStats(seasonID int64, gameID, practiceID, playerID sql.NullInt64, blue *sportscode.BlueCollarLine) *store.BlueCollarStats {
	return &store.BlueCollarStats{
		SeasonID:   seasonID,
		GameID:     gameID,
		PracticeID: practiceID,
		PlayerID:   playerID,

		TotalBlueCollar: blue.Total(),
		RebTip:          blue.RebTip,
		DefReb:          blue.DefReb,
		Misc:            blue.Misc,
		Deflection:      blue.Deflection,
		Steal:           blue.Steal,
		Block:           blue.Block,
		OffReb:          blue.OffReb,
		FloorDive:       blue.FloorDive,
		ChargeTaken:     blue.ChargeTaken,
	}
}
