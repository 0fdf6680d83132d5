package sportscode

import (
	"fmt"
	"strings"
)

// squadOpposite pairs each practice squad with the one it scrimmages.
var squadOpposite = map[string]string{
	"Crimson": "White",
	"White":   "Crimson",
	"Alabama": "Blue",
	"Blue":    "Alabama",
}

// Event labels copied onto each possession record for drill-filtered
// possession reports. Matching is by substring over the whole row, so
// "Foul" also picks up "Fouled"; the reports depend on that.
var possessionEventLabels = []string{
	"ATR+", "ATR-", "2FG+", "2FG-", "3FG+", "3FG-", "FT+", "Turnover", "Foul",
}

// PracticeResult is everything one practice export parses into.
type PracticeResult struct {
	Players     map[string]*PlayerLine
	Possessions []PossessionRecord
}

func (pr *PracticeResult) player(name string) *PlayerLine {
	p, ok := pr.Players[name]
	if !ok {
		p = NewPlayerLine(name)
		pr.Players[name] = p
	}
	return p
}

// contestSplitPrefix maps a shot class to its stat-column prefix.
func contestSplitPrefix(shotClass string) string {
	switch shotClass {
	case "atr":
		return "atr"
	case "2fg":
		return "fg2"
	case "3fg":
		return "fg3"
	}
	return ""
}

// rowShotContext is the first field-goal attempt found in a squad row, used
// to attribute contest grades to a shot class.
type rowShotContext struct {
	class  string
	result string
}

func findRowShotContext(t *Table, r Row) *rowShotContext {
	for _, col := range t.PlayerColumns() {
		for _, tok := range r.Tokens(col) {
			switch ClassifyToken(tok) {
			case TokenATRMake:
				return &rowShotContext{class: "atr", result: "made"}
			case TokenATRMiss:
				return &rowShotContext{class: "atr", result: "miss"}
			case Token2FGMake:
				return &rowShotContext{class: "2fg", result: "made"}
			case Token2FGMiss:
				return &rowShotContext{class: "2fg", result: "miss"}
			case Token3FGMake:
				return &rowShotContext{class: "3fg", result: "made"}
			case Token3FGMiss:
				return &rowShotContext{class: "3fg", result: "miss"}
			}
		}
	}
	return nil
}

// drillLabels splits the DRILL TYPE cell into uppercased tags.
func drillLabels(r Row) []string {
	var labels []string
	for _, part := range strings.Split(r.Get("DRILL TYPE"), ",") {
		if t := strings.TrimSpace(part); t != "" {
			labels = append(labels, strings.ToUpper(t))
		}
	}
	return labels
}

// rowEvent appends one tagged event to a player's stat detail list.
func (p *PlayerLine) rowEvent(name string, labels []string, extra map[string]any) {
	ev := StatEvent{"event": name, "drill_labels": labels}
	for k, v := range extra {
		ev[k] = v
	}
	p.StatDetails = append(p.StatDetails, ev)
}

// rowPoints counts made-shot points across the whole row text. "Fouled +1"
// credits are deliberately excluded; free throws they produce are recorded
// as events, not live points.
func rowPoints(text string) int {
	return strings.Count(text, "ATR+")*2 +
		strings.Count(text, "2FG+")*2 +
		strings.Count(text, "3FG+")*3 +
		strings.Count(text, "FT+")
}

// possessionEvents extracts the raw event labels a possession owns, one
// entry per occurrence across the row, plus the free throw implied by a
// "<squad> Fouled +1" credit.
func possessionEvents(text, offenseSquad string) []string {
	var events []string
	for _, label := range possessionEventLabels {
		for n := strings.Count(text, label); n > 0; n-- {
			events = append(events, label)
		}
	}
	if strings.Contains(text, offenseSquad+" Fouled +1") {
		events = append(events, "FT+")
	}
	return events
}

// ParsePractice runs the full row pass over one practice export. Player
// identities are the roster column headers; resolving them against the
// roster table is the caller's job.
func ParsePractice(t *Table) (*PracticeResult, error) {
	if len(t.PlayerColumns()) == 0 {
		return nil, fmt.Errorf("practice csv has no player columns")
	}

	res := &PracticeResult{Players: make(map[string]*PlayerLine)}

	// Index of the most recent live offense possession per squad, for Off
	// Reb / Neutral continuation rows.
	lastOffense := make(map[string]int)

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		rowType := r.Type()
		rowTypeClean := strings.ToLower(rowType)
		labels := drillLabels(r)

		var shotCtx *rowShotContext
		if _, isSquad := squadOpposite[rowType]; isSquad {
			shotCtx = findRowShotContext(t, r)
		}

		// Bump and low-man grades hide inside longer free-text cells on
		// any row type, so they get a regex pass of their own.
		for _, col := range t.PlayerColumns() {
			cell := r.Get(col)
			plus, minus := CountBumpTokens([]string{cell})
			lowPlus, lowMinus := CountLowManTokens([]string{cell})
			if plus+minus+lowPlus+lowMinus == 0 {
				continue
			}
			p := res.player(col)
			for n := plus; n > 0; n-- {
				p.BumpPositive++
				p.CollisionGapPositive++
				p.rowEvent("bump_positive", labels, nil)
			}
			for n := minus; n > 0; n-- {
				p.BumpMissed++
				p.CollisionGapMissed++
				p.rowEvent("bump_missed", labels, nil)
			}
			for n := lowPlus; n > 0; n-- {
				p.LowHelpPositive++
				p.rowEvent("low_help_positive", labels, nil)
			}
			for n := lowMinus; n > 0; n-- {
				p.LowHelpMissed++
				p.rowEvent("low_help_missed", labels, nil)
			}
		}

		if _, isSquad := squadOpposite[rowType]; isSquad {
			res.parseSquadPossession(t, r, rowType, labels, lastOffense)
		}

		switch rowTypeClean {
		case "offense rebounding opportunities", "offense rebound opportunities":
			res.parseOffenseRebounding(t, r, labels)
			continue
		case "defense rebounding opportunities", "defense rebound opportunities":
			res.parseDefenseRebounding(t, r, labels)
			continue
		}

		if rowType == "Crimson" || rowType == "White" {
			if res.parseCollisionGapRow(t, r, rowType, labels) {
				continue
			}
		}

		if rowType == "PnR" {
			res.parsePnrRow(t, r, labels)
			continue
		}

		if rowType == "FREE THROW" {
			res.parseFreeThrowRow(t, r, labels)
			continue
		}

		if rowType == "Win / Loss" {
			res.parseWinLossRow(r, labels)
			continue
		}

		if _, isSquad := squadOpposite[rowType]; isSquad {
			res.parseSquadDefense(t, r, labels, shotCtx)
			res.parseSquadOffense(t, r, labels)
			continue
		}

		if strings.HasPrefix(rowType, "#") {
			res.parseHustleRow(r, rowType, labels)
		}
	}

	return res, nil
}

// parseSquadPossession emits the offense and defense possession records for
// one live squad row, or extends the squad's previous possession when the
// row is an Off Reb or Neutral continuation.
func (pr *PracticeResult) parseSquadPossession(t *Table, r Row, squad string, labels []string, lastOffense map[string]int) {
	opposite := squadOpposite[squad]
	offenseCol := strings.ToUpper(squad) + " PLAYER POSSESSIONS"
	defenseCol := strings.ToUpper(opposite) + " PLAYER POSSESSIONS"

	teamCell := r.Get("TEAM")
	offRebRow := false
	for _, tok := range SplitTokens(teamCell) {
		if tok == "Off Reb" {
			offRebRow = true
		}
	}
	if offRebRow {
		for _, name := range r.Tokens(offenseCol) {
			pr.player(name).TeamOffRebOn++
		}
	}

	rowText := r.Text()
	points := rowPoints(rowText)
	events := possessionEvents(rowText, squad)

	teamUpper := strings.ToUpper(teamCell)
	skip := offRebRow || strings.Contains(teamUpper, "OFF REB") || strings.Contains(teamUpper, "NEUTRAL")

	if skip {
		idx, ok := lastOffense[squad]
		if !ok {
			return
		}
		prev := &pr.Possessions[idx]
		prev.PointsScored += points
		prev.Events = append(prev.Events, events...)
		for _, tok := range SplitTokens(teamCell) {
			if tok == "Off Reb" {
				prev.Events = append(prev.Events, "TEAM Off Reb")
				if !offRebRow {
					for _, name := range prev.PlayersOnFloor {
						pr.player(name).TeamOffRebOn++
					}
				}
			}
		}
		if label := strings.TrimSpace(r.Get("Label")); label == "ATR-" || label == "2FG-" || label == "3FG-" {
			for _, name := range prev.PlayersOnFloor {
				pr.player(name).TeamMissesOn++
			}
		}
		return
	}

	offPlayers := r.Tokens(offenseCol)
	defPlayers := r.Tokens(defenseCol)

	base := PossessionRecord{
		PossessionType:  strings.TrimSpace(r.Get("POSSESSION TYPE")),
		PossessionStart: strings.TrimSpace(r.Get("POSSESSION START")),
		PaintTouches:    strings.TrimSpace(r.Get("PAINT TOUCHES")),
		ShotClock:       strings.TrimSpace(r.Get("SHOT CLOCK")),
		ShotClockPT:     strings.TrimSpace(r.Get("SHOT CLOCK PT")),
		PointsScored:    points,
		DrillLabels:     labels,
	}

	offPoss := base
	offPoss.Side = squad
	offPoss.Segment = "Offense"
	offPoss.PlayersOnFloor = offPlayers
	offPoss.Events = append([]string(nil), events...)

	if label := strings.TrimSpace(r.Get("Label")); label == "ATR-" || label == "2FG-" || label == "3FG-" {
		for _, name := range offPlayers {
			pr.player(name).TeamMissesOn++
		}
	}

	pr.Possessions = append(pr.Possessions, offPoss)
	lastOffense[squad] = len(pr.Possessions) - 1

	defPoss := base
	defPoss.Side = opposite
	defPoss.Segment = "Defense"
	defPoss.PlayersOnFloor = defPlayers
	defPoss.Events = append([]string(nil), events...)
	pr.Possessions = append(pr.Possessions, defPoss)
}

func (pr *PracticeResult) parseOffenseRebounding(t *Table, r Row, labels []string) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)
		for _, tok := range tokens {
			switch ClassifyToken(tok) {
			case TokenCrashPlus:
				p.CrashPositive++
				p.rowEvent("crash_positive", labels, nil)
			case TokenCrashMinus:
				p.CrashMissed++
				p.rowEvent("crash_missed", labels, nil)
			case TokenBackManPlus:
				p.BackManPositive++
				p.rowEvent("back_man_positive", labels, nil)
			case TokenBackManMinus:
				p.BackManMissed++
				p.rowEvent("back_man_missed", labels, nil)
			}
		}
	}
}

func (pr *PracticeResult) parseDefenseRebounding(t *Table, r Row, labels []string) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)
		for _, tok := range tokens {
			switch ClassifyToken(tok) {
			case TokenBoxOutPlus:
				p.BoxOutPositive++
				p.rowEvent("box_out_positive", labels, nil)
			case TokenBoxOutMinus:
				p.BoxOutMissed++
				p.rowEvent("box_out_missed", labels, nil)
			case TokenGivenUp:
				p.OffRebGivenUp++
				p.rowEvent("off_reb_given_up", labels, nil)
			}
		}
	}
}

// parseCollisionGapRow handles Gap and Contest Pass grades tagged on squad
// rows. Reports whether the row carried any, in which case the squad row is
// a defensive-grades row and the offense parse is skipped.
func (pr *PracticeResult) parseCollisionGapRow(t *Table, r Row, squad string, labels []string) bool {
	handled := false
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)
		for _, tok := range tokens {
			switch ClassifyToken(tok) {
			case TokenGapPlus:
				p.CollisionGapPositive++
				p.rowEvent("collision_gap_positive", labels, map[string]any{"context": squad})
				handled = true
			case TokenGapMinus:
				p.CollisionGapMissed++
				p.rowEvent("collision_gap_missed", labels, map[string]any{"context": squad})
				handled = true
			case TokenPassContestPlus:
				p.PassContestPositive++
				p.rowEvent("pass_contest_positive", labels, map[string]any{"context": squad})
				handled = true
			case TokenPassContestMinus:
				p.PassContestMissed++
				p.rowEvent("pass_contest_missed", labels, map[string]any{"context": squad})
				handled = true
			}
		}
	}
	return handled
}

func (pr *PracticeResult) parsePnrRow(t *Table, r Row, labels []string) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)
		for _, tok := range tokens {
			switch ClassifyToken(tok) {
			case TokenGapPlus:
				p.PnrGapPositive++
				p.rowEvent("pnr_gap_positive", labels, nil)
			case TokenGapMinus:
				p.PnrGapMissed++
				p.rowEvent("pnr_gap_missed", labels, nil)
			case TokenLowPlus:
				p.LowHelpPositive++
				p.rowEvent("low_help_positive", labels, nil)
			case TokenLowMinus:
				p.LowHelpMissed++
				p.rowEvent("low_help_missed", labels, nil)
			case TokenCloseWindowPlus:
				p.CloseWindowPositive++
				p.rowEvent("close_window_positive", labels, nil)
			case TokenCloseWindowMinus:
				p.CloseWindowMissed++
				p.rowEvent("close_window_missed", labels, nil)
			case TokenShutDoorPlus:
				p.ShutDoorPositive++
				p.rowEvent("shut_door_positive", labels, nil)
			case TokenShutDoorMinus:
				p.ShutDoorMissed++
				p.rowEvent("shut_door_missed", labels, nil)
			}
		}
	}
}

// addFreeThrow records one free throw attempt with its shot object.
func (pr *PracticeResult) addFreeThrow(p *PlayerLine, made bool, labels []string, shotLocation string) {
	p.FTA++
	result := "miss"
	if made {
		p.FTM++
		p.Points++
		result = "made"
	}
	sd := ShotDetail{
		"event":         "shot_attempt",
		"shot_class":    "ft",
		"result":        result,
		"drill_labels":  labels,
		"shot_location": shotLocation,
	}
	p.ShotDetails = append(p.ShotDetails, sd)
	p.StatDetails = append(p.StatDetails, StatEvent(cloneDetail(sd)))
}

func cloneDetail(sd ShotDetail) map[string]any {
	out := make(map[string]any, len(sd))
	for k, v := range sd {
		out[k] = v
	}
	return out
}

func (pr *PracticeResult) parseFreeThrowRow(t *Table, r Row, labels []string) {
	shotLocation := strings.TrimSpace(r.Get("Shot Location"))
	for _, col := range t.PlayerColumns() {
		for _, tok := range r.Tokens(col) {
			switch ClassifyToken(tok) {
			case TokenFTMake:
				pr.addFreeThrow(pr.player(col), true, labels, shotLocation)
			case TokenFTMiss:
				pr.addFreeThrow(pr.player(col), false, labels, shotLocation)
			}
		}
	}
}

// squadResultColumns are the Win / Loss row columns naming who was on each
// squad for the drill.
var squadResultColumns = []string{"CRIMSON", "WHITE", "ALABAMA", "BLUE"}

// parseWinLossRow credits drill wins and losses. Each squad column holds a
// result word plus jersey tokens like "Win, #4 Smith"; names are rebuilt
// from the final "#" segment so compound cells parse cleanly.
func (pr *PracticeResult) parseWinLossRow(r Row, labels []string) {
	for _, teamCol := range squadResultColumns {
		cell := strings.TrimSpace(r.Get(teamCol))
		if cell == "" {
			continue
		}
		lower := strings.ToLower(cell)
		var isWin bool
		switch {
		case strings.Contains(lower, "win"):
			isWin = true
		case strings.Contains(lower, "loss"):
			isWin = false
		default:
			continue
		}

		for _, tok := range SplitTokens(cell) {
			hash := strings.Index(tok, "#")
			if hash < 0 {
				continue
			}
			segments := strings.Split(tok[hash:], "#")
			name := "#" + strings.TrimSpace(segments[len(segments)-1])
			p := pr.player(name)
			event := "loss"
			if isWin {
				p.PracticeWins++
				event = "win"
			} else {
				p.PracticeLosses++
			}
			p.rowEvent(event, labels, map[string]any{"team": teamCol})
		}
	}
}

// parseSquadDefense credits contest grades tagged on a live squad row. When
// the row also carries a shot attempt, contest grades feed the
// contest-by-shot-class split for that shot's class and result.
func (pr *PracticeResult) parseSquadDefense(t *Table, r Row, labels []string, shotCtx *rowShotContext) {
	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)
		for _, tok := range tokens {
			event := ClassifyToken(tok)
			var statName, level string
			switch event {
			case TokenFoulBy:
				p.FoulBy++
				statName = "foul_by"
			case TokenContestFront:
				p.ContestFront++
				statName = "contest_front"
			case TokenContestSide:
				p.ContestSide++
				statName = "contest_side"
			case TokenContestBehind:
				p.ContestBehind++
				statName = "contest_behind"
			case TokenContestLate:
				p.ContestLate++
				statName, level = "contest_late", "late"
			case TokenContestEarly:
				p.ContestEarly++
				statName, level = "contest_early", "contest"
			case TokenNoContest:
				p.ContestNo++
				statName, level = "contest_no", "no_contest"
			case TokenBlowby:
				p.BlowbyTotal++
				statName = "blowby_total"
			case TokenBlowbyTripleThreat:
				p.BlowbyTripleThreat++
				statName = "blowby_triple_threat"
			case TokenBlowbyCloseout:
				p.BlowbyCloseout++
				statName = "blowby_closeout"
			case TokenBlowbyIsolation:
				p.BlowbyIsolation++
				statName = "blowby_isolation"
			default:
				continue
			}

			extra := map[string]any{}
			if level != "" && shotCtx != nil {
				if prefix := contestSplitPrefix(shotCtx.class); prefix != "" {
					p.AddContestSplit(prefix + "_" + level + "_attempts")
					if shotCtx.result == "made" {
						p.AddContestSplit(prefix + "_" + level + "_makes")
					}
				}
				extra["contest_level"] = level
				extra["shot_class"] = shotCtx.class
				extra["shot_result"] = shotCtx.result
			}
			p.rowEvent(statName, labels, extra)
		}
	}
}

// parseSquadOffense credits shots and counting stats on a live squad row.
// Unlike game offense rows, every player's tokens are counted individually;
// squad scrimmage tagging puts each event in its owner's column already.
func (pr *PracticeResult) parseSquadOffense(t *Table, r Row, labels []string) {
	assisted := false
	for _, col := range t.PlayerColumns() {
		for _, tok := range r.Tokens(col) {
			if event := ClassifyToken(tok); event == TokenAssist || event == TokenPotAssist {
				assisted = true
			}
		}
	}

	shotLocation := strings.TrimSpace(r.Get("Shot Location"))

	for _, col := range t.PlayerColumns() {
		tokens := r.Tokens(col)
		if len(tokens) == 0 {
			continue
		}
		p := pr.player(col)

		for _, tok := range tokens {
			event := ClassifyToken(tok)

			var shotClass string
			made := false
			switch event {
			case TokenATRMake, TokenATRMiss:
				shotClass = "atr"
				made = event == TokenATRMake
				p.ATRAttempts++
				if made {
					p.ATRMakes++
					p.Points += 2
				}
			case Token2FGMake, Token2FGMiss:
				shotClass = "2fg"
				made = event == Token2FGMake
				p.FG2Attempts++
				if made {
					p.FG2Makes++
					p.Points += 2
				}
			case Token3FGMake, Token3FGMiss:
				shotClass = "3fg"
				made = event == Token3FGMake
				p.FG3Attempts++
				if made {
					p.FG3Makes++
					p.Points += 3
				}
			}

			if shotClass != "" {
				result := "miss"
				if made {
					result = "made"
				}
				sd := NewShotDetail(shotClass, result, r.Get("POSSESSION TYPE"), shotLocation, assisted)
				sd["event"] = "shot_attempt"
				sd["drill_labels"] = labels
				CaptureSubcategories(sd, t, r, shotClass)
				p.ShotDetails = append(p.ShotDetails, sd)
				p.StatDetails = append(p.StatDetails, StatEvent(cloneDetail(sd)))
				continue
			}

			switch event {
			case TokenFTMake:
				pr.addFreeThrow(p, true, labels, shotLocation)
			case TokenFTMiss:
				pr.addFreeThrow(p, false, labels, shotLocation)
			case TokenAssist:
				p.Assists++
				p.rowEvent("assists", labels, nil)
			case TokenTurnover:
				p.Turnovers++
				p.rowEvent("turnovers", labels, nil)
			case TokenPotAssist:
				p.PotAssists++
				p.rowEvent("pot_assists", labels, nil)
			case TokenSecondAssist:
				p.SecondAssists++
				p.rowEvent("second_assists", labels, nil)
			case TokenFouled:
				p.FoulBy++
				p.rowEvent("foul_by", labels, nil)
			}
		}
	}
}

// parseHustleRow handles a row typed with a jersey column name; the cell
// under that column carries blue-collar and sprint tokens.
func (pr *PracticeResult) parseHustleRow(r Row, name string, labels []string) {
	tokens := r.Tokens(name)
	if len(tokens) == 0 {
		return
	}
	p := pr.player(name)
	for _, tok := range tokens {
		event := ClassifyToken(tok)
		if key, ok := blueCollarKeys[event]; ok {
			p.Blue.Add(key)
			p.rowEvent(key, labels, nil)
			continue
		}
		switch event {
		case TokenSprintWin:
			p.SprintWins++
			p.rowEvent("sprint_wins", labels, nil)
		case TokenSprintLoss:
			p.SprintLosses++
			p.rowEvent("sprint_losses", labels, nil)
		}
	}
}
