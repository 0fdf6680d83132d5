package sportscode

import (
	"fmt"
	"strings"
)

// GameResult is everything one game export parses into, before persistence.
type GameResult struct {
	Players      map[string]*PlayerLine
	Team         TeamTotals
	Opponent     OpponentTotals
	OpponentBlue BlueCollarLine

	// Possessions is the full record list (Neutral and Off Reb rows
	// included); the counted totals below exclude them.
	Possessions          []PossessionRecord
	OffensivePossessions int
	DefensivePossessions int

	Breakdowns GameBreakdowns
}

var gameRequiredColumns = []string{
	"PLAYER POSSESSIONS", "OPP STATS", "POSSESSION TYPE",
	"PAINT TOUCHES", "SHOT CLOCK", "SHOT CLOCK PT", "TEAM", "GAME SPLITS",
}

// ParseGame runs the full row pass over one game export and returns the
// accumulated box score, possession list, and breakdowns. It does not touch
// the database; persistence is the caller's job.
func ParseGame(t *Table) (*GameResult, error) {
	if err := t.RequireColumns(gameRequiredColumns...); err != nil {
		return nil, fmt.Errorf("game csv: %w", err)
	}

	res := &GameResult{Players: make(map[string]*PlayerLine)}

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		rowType := r.Type()
		switch {
		case rowType == "Offense":
			res.parseOffenseRow(t, r)
		case rowType == "Defense":
			res.parseOpponentStats(r)
			res.parseDefensePlayerRow(t, r)
		case rowType == "Opponent Blue Collar Plays":
			for _, tok := range r.Tokens("OPP STATS") {
				if key, ok := blueCollarKeys[ClassifyToken(tok)]; ok {
					res.Opponent.TotalBlueCollar += res.OpponentBlue.Add(key)
				}
			}
		case rowType == "DEF Note":
			res.parseBlueCollarRow(t, r)
		case rowType == "TEAM":
			// Team-level administrative rows carry nothing countable.
		case strings.HasPrefix(rowType, "#"):
			res.parseJerseyRow(r, rowType)
		}
	}

	for _, p := range res.Players {
		res.Team.Points += p.Points
		res.Team.Assists += p.Assists
		res.Team.SecondAssists += p.SecondAssists
		res.Team.PotAssists += p.PotAssists
		res.Team.Turnovers += p.Turnovers
		res.Team.ATRMakes += p.ATRMakes
		res.Team.ATRAttempts += p.ATRAttempts
		res.Team.FG2Makes += p.FG2Makes
		res.Team.FG2Attempts += p.FG2Attempts
		res.Team.FG3Makes += p.FG3Makes
		res.Team.FG3Attempts += p.FG3Attempts
		res.Team.FTM += p.FTM
		res.Team.FTA += p.FTA
		res.Team.FoulBy += p.FoulBy
		p.ComputeRates()
	}

	res.OffensivePossessions, res.DefensivePossessions = CountGamePossessions(t, true)
	res.Team.Possessions = res.OffensivePossessions
	res.Opponent.Possessions = res.DefensivePossessions

	res.computeTeamRates(t)

	res.Possessions = BuildGamePossessions(t)
	res.Breakdowns = BuildGameBreakdowns(t)
	return res, nil
}

func (g *GameResult) player(name string) *PlayerLine {
	p, ok := g.Players[name]
	if !ok {
		p = NewPlayerLine(name)
		g.Players[name] = p
	}
	return p
}

// parseOffenseRow handles one offensive event line. The row is scanned
// twice: once across player columns to find the shooter (first column with a
// field-goal token wins, ATR before 2FG before 3FG within a column), then
// across every column for the assist credit. All three assist variants
// credit the shooter, not the column that held the token.
func (g *GameResult) parseOffenseRow(t *Table, r Row) {
	playerCols := t.PlayerColumns()

	var shooter *PlayerLine
	var shotClass string
	made := false

	for _, col := range playerCols {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		g.player(col)

		has := make(map[EventToken]bool, len(tokens))
		for _, tok := range tokens {
			has[ClassifyToken(tok)] = true
		}

		switch {
		case has[TokenATRMake] || has[TokenATRMiss]:
			shooter = g.player(col)
			shotClass = "atr"
			made = has[TokenATRMake]
			shooter.ATRAttempts++
			if made {
				shooter.ATRMakes++
				shooter.Points += 2
			}
		case has[Token2FGMake] || has[Token2FGMiss]:
			shooter = g.player(col)
			shotClass = "2fg"
			made = has[Token2FGMake]
			shooter.FG2Attempts++
			if made {
				shooter.FG2Makes++
				shooter.Points += 2
			}
		case has[Token3FGMake] || has[Token3FGMiss]:
			shooter = g.player(col)
			shotClass = "3fg"
			made = has[Token3FGMake]
			shooter.FG3Attempts++
			if made {
				shooter.FG3Makes++
				shooter.Points += 3
			}
		}
		if shooter != nil {
			break
		}
	}

	assisted := false
	if shooter != nil {
	assistScan:
		for _, col := range t.Columns {
			for _, tok := range r.Tokens(col) {
				switch ClassifyToken(tok) {
				case TokenAssist:
					assisted = true
					shooter.Assists++
					break assistScan
				case TokenPotAssist:
					assisted = true
					shooter.PotAssists++
					break assistScan
				}
			}
		}
		for _, col := range t.Columns {
			for _, tok := range r.Tokens(col) {
				if ClassifyToken(tok) == TokenSecondAssist {
					shooter.SecondAssists++
				}
			}
		}
	}

	// Free throws count for whichever column holds them, shooter or not.
	for _, col := range playerCols {
		for _, tok := range r.Tokens(col) {
			switch ClassifyToken(tok) {
			case TokenFTMake:
				p := g.player(col)
				p.FTM++
				p.FTA++
				p.Points++
			case TokenFTMiss:
				g.player(col).FTA++
			}
		}
	}

	// Remaining counting stats stay with the column that holds them.
	for _, col := range playerCols {
		for _, tok := range r.Tokens(col) {
			switch ClassifyToken(tok) {
			case TokenTurnover:
				g.player(col).Turnovers++
			case TokenFouled:
				g.player(col).FoulBy++
			}
		}
	}

	if shooter != nil {
		result := "miss"
		if made {
			result = "made"
		}
		sd := NewShotDetail(shotClass, result, r.Get("POSSESSION TYPE"), strings.TrimSpace(r.Get("Shot Location")), assisted)
		CaptureSubcategories(sd, t, r, shotClass)
		shooter.ShotDetails = append(shooter.ShotDetails, sd)
	}
}

// parseOpponentStats reads the OPP STATS cell of a Defense row into the
// opponent box score.
func (g *GameResult) parseOpponentStats(r Row) {
	for _, tok := range r.Tokens("OPP STATS") {
		event := ClassifyToken(tok)
		if g.Opponent.addShotToken(event) {
			continue
		}
		switch event {
		case TokenAssist:
			g.Opponent.Assists++
		case TokenPotAssist:
			g.Opponent.PotAssists++
		case TokenSecondAssist:
			g.Opponent.SecondAssists++
		case TokenTurnover:
			g.Opponent.Turnovers++
		case TokenFouled:
			g.Opponent.FoulBy++
		}
	}
}

// parseDefensePlayerRow credits contest grades and perimeter-defense marks
// to the player columns of a Defense row. Bump grades double-write the
// legacy bump fields and the collision-gap fields; older reports read one,
// newer reports the other.
func (g *GameResult) parseDefensePlayerRow(t *Table, r Row) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := g.player(col)
		for _, tok := range tokens {
			switch ClassifyToken(tok) {
			case TokenFoulBy:
				p.FoulBy++
			case TokenContestFront:
				p.ContestFront++
			case TokenContestSide:
				p.ContestSide++
			case TokenContestBehind:
				p.ContestBehind++
			case TokenContestLate:
				p.ContestLate++
			case TokenContestEarly:
				p.ContestEarly++
			case TokenNoContest:
				p.ContestNo++
			case TokenBumpPlus:
				p.BumpPositive++
				p.CollisionGapPositive++
			case TokenBumpMinus:
				p.BumpMissed++
				p.CollisionGapMissed++
			case TokenGapPlus:
				p.CollisionGapPositive++
			case TokenGapMinus:
				p.CollisionGapMissed++
			case TokenBlowby:
				p.BlowbyTotal++
			case TokenBlowbyTripleThreat:
				p.BlowbyTripleThreat++
			case TokenBlowbyCloseout:
				p.BlowbyCloseout++
			case TokenBlowbyIsolation:
				p.BlowbyIsolation++
			}
		}
	}
}

// parseBlueCollarRow credits hustle plays tagged in a DEF Note row.
func (g *GameResult) parseBlueCollarRow(t *Table, r Row) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := g.player(col)
		for _, tok := range tokens {
			if key, ok := blueCollarKeys[ClassifyToken(tok)]; ok {
				g.Team.TotalBlueCollar += p.Blue.Add(key)
			}
		}
	}
}

// parseJerseyRow handles a row whose type is itself a player column name
// ("#12 John Doe"); the cell under that same column carries hustle tokens.
func (g *GameResult) parseJerseyRow(r Row, name string) {
	p := g.player(name)
	for _, tok := range r.Tokens(name) {
		if key, ok := blueCollarKeys[ClassifyToken(tok)]; ok {
			g.Team.TotalBlueCollar += p.Blue.Add(key)
		}
	}
}

// countOffenseTokens counts raw token occurrences across the player columns
// of offense rows passing the filter.
func countOffenseTokens(t *Table, filter func(Row) bool, match map[string]bool) int {
	n := 0
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if r.Type() != "Offense" || (filter != nil && !filter(r)) {
			continue
		}
		for _, col := range t.PlayerColumns() {
			for _, tok := range r.Tokens(col) {
				if match[tok] {
					n++
				}
			}
		}
	}
	return n
}

func tokenSet(tokens ...string) map[string]bool {
	m := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		m[tok] = true
	}
	return m
}

// computeTeamRates fills in the derived team percentages. Each formula's
// rounding is part of the report contract and must not drift.
func (g *GameResult) computeTeamRates(t *Table) {
	offenseRows := 0
	neutralRows := 0
	orebCount := 0
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if r.Type() != "Offense" {
			continue
		}
		offenseRows++
		team := r.Get("TEAM")
		if strings.Contains(team, "Neutral") {
			neutralRows++
		}
		orebCount += strings.Count(team, "Off Reb")
	}
	g.Team.OffRebounds = orebCount

	// Raw tempo count for rate denominators: runs minus neutrals minus
	// offensive-rebound continuations.
	poss := offenseRows - neutralRows - orebCount

	fgm := g.Team.ATRMakes + g.Team.FG2Makes + g.Team.FG3Makes
	g.Team.AssistPct = pct(float64(g.Team.Assists), float64(fgm), 1)

	atrMiss := g.Team.ATRAttempts - g.Team.ATRMakes
	fg2Miss := g.Team.FG2Attempts - g.Team.FG2Makes
	fg3Miss := g.Team.FG3Attempts - g.Team.FG3Makes
	g.Team.OrebPct = pct(float64(orebCount), float64(atrMiss+fg2Miss+fg3Miss), 0)

	fta := countOffenseTokens(t, nil, tokenSet("FT+", "FT-"))
	fga := g.Team.ATRAttempts + g.Team.FG2Attempts + g.Team.FG3Attempts
	g.Team.FTRate = pct(float64(fta), float64(fga), 1)

	g.Team.TurnoverPct = pct(float64(g.Team.Turnovers), float64(poss), 1)

	good := g.Team.FTA + g.Team.ATRMakes + atrMiss + g.Team.FG3Makes + fg3Miss
	bad := g.Team.FG2Makes + fg2Miss
	g.Team.GoodShotPct = pct(float64(good), float64(good+bad), 2)

	// Transition conversion rate. Opportunities are live-ball changes
	// (makes, misses, steals) outside neutral rows; conversions are any
	// shot attempt or drawn foul on a Transition-tagged possession.
	shotTokens := tokenSet("ATR+", "2FG+", "3FG+", "ATR-", "2FG-", "3FG-")
	madeOrMissed := countOffenseTokens(t, nil, shotTokens)
	steals := countOffenseTokens(t, nil, tokenSet("Steal"))
	isNeutral := func(r Row) bool { return strings.Contains(r.Get("TEAM"), "Neutral") }
	neutralShots := countOffenseTokens(t, isNeutral, shotTokens)
	neutralSteals := countOffenseTokens(t, isNeutral, tokenSet("Steal"))
	opportunities := madeOrMissed + steals - neutralShots - neutralSteals

	inTransition := func(r Row) bool {
		return strings.Contains(r.Get("POSSESSION TYPE"), "Transition")
	}
	conversions := countOffenseTokens(t, inTransition,
		tokenSet("ATR+", "ATR-", "2FG+", "2FG-", "3FG+", "3FG-", "Fouled"))
	g.Team.TCRPct = pct(float64(conversions), float64(opportunities), 1)

	// Recount free throws straight from the log; per-player FT columns are
	// occasionally left blank when the tagging crew falls behind.
	g.Team.FTM = countOffenseTokens(t, nil, tokenSet("FT+"))
	g.Team.FTA = fta
}
