package sportscode

import "strings"

// PossessionRecord is one live possession observed in the event log. Games
// emit one per Offense/Defense row; practices emit two per squad row, one
// for each side of the ball. Side is the possession's team label ("Offense"
// and "Defense" for games, squad colors for practices); Segment is always
// the side of the ball.
type PossessionRecord struct {
	Side            string
	Segment         string
	PossessionType  string
	PossessionStart string
	PaintTouches    string
	ShotClock       string
	ShotClockPT     string
	PlayersOnFloor  []string
	PointsScored    int
	IsNeutral       bool
	DrillLabels     []string
	Events          []string
}

// PossessionBucket accumulates a count/points pair for one breakdown cell.
type PossessionBucket struct {
	Count  int `json:"count"`
	Points int `json:"points"`
}

// Possession-type tags the breakdown reports care about. Anything else in
// the POSSESSION TYPE cell is carried on the possession record but not
// bucketed.
var breakdownTokens = []string{"Transition", "Man", "Zone", "Press", "UOB", "SLOB", "Garbage", "OREB Putback"}

// Period labels read from the GAME SPLITS column.
var gameSplits = []string{"1st Half", "2nd Half", "Overtime"}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// offenseRowPoints sums the scoring tokens across every player column of an
// Offense row.
func offenseRowPoints(t *Table, r Row) int {
	pts := 0
	for _, col := range t.PlayerColumns() {
		for _, tok := range r.Tokens(col) {
			pts += PointValue(ClassifyToken(tok))
		}
	}
	return pts
}

// defenseRowPoints sums the scoring tokens in the OPP STATS cell of a
// Defense row.
func defenseRowPoints(r Row) int {
	pts := 0
	for _, tok := range r.Tokens("OPP STATS") {
		pts += PointValue(ClassifyToken(tok))
	}
	return pts
}

// BuildGamePossessions emits one possession record per Offense/Defense row,
// in file order. Neutral rows are kept (their points still count toward
// lineup totals) and flagged so the counters can exclude them.
func BuildGamePossessions(t *Table) []PossessionRecord {
	var possessions []PossessionRecord
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		rowType := r.Type()
		if rowType != "Offense" && rowType != "Defense" {
			continue
		}

		var pts int
		if rowType == "Offense" {
			pts = offenseRowPoints(t, r)
		} else {
			pts = defenseRowPoints(r)
		}

		team := r.Get("TEAM")
		events := r.Tokens("TEAM")
		// Stored event rows use the exact labels the possession math
		// filters on, so normalize the two markers that matter. Offense
		// rows self-report rebound continuations in TEAM; defense rows
		// carry the opponent's in OPP STATS.
		if strings.Contains(team, "Neutral") && !containsString(events, "Neutral") {
			events = append(events, "Neutral")
		}
		offRebCell := team
		if rowType == "Defense" {
			offRebCell = r.Get("OPP STATS")
		}
		if strings.Contains(offRebCell, "Off Reb") && !containsString(events, "Off Reb") {
			events = append(events, "Off Reb")
		}

		possessions = append(possessions, PossessionRecord{
			Side:            rowType,
			Segment:         rowType,
			PossessionType:  strings.TrimSpace(r.Get("POSSESSION TYPE")),
			PossessionStart: strings.TrimSpace(r.Get("POSSESSION START")),
			PaintTouches:    strings.TrimSpace(r.Get("PAINT TOUCHES")),
			ShotClock:       strings.TrimSpace(r.Get("SHOT CLOCK")),
			ShotClockPT:     strings.TrimSpace(r.Get("SHOT CLOCK PT")),
			PlayersOnFloor:  r.Tokens("PLAYER POSSESSIONS"),
			PointsScored:    pts,
			IsNeutral:       strings.Contains(team, "Neutral"),
			Events:          events,
		})
	}
	return possessions
}

// CountGamePossessions computes true possession totals per side. Neutral
// rows never count. When subtractOffReb is set, offensive-rebound
// continuations are excluded too: offense rows self-report them in the TEAM
// cell, defense rows report the opponent's in OPP STATS. The asymmetry
// mirrors how the log is tagged, not a bug.
func CountGamePossessions(t *Table, subtractOffReb bool) (offense, defense int) {
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		team := r.Get("TEAM")
		switch r.Type() {
		case "Offense":
			if strings.Contains(team, "Neutral") {
				continue
			}
			if subtractOffReb && strings.Contains(team, "Off Reb") {
				continue
			}
			offense++
		case "Defense":
			if strings.Contains(team, "Neutral") {
				continue
			}
			if subtractOffReb && strings.Contains(r.Get("OPP STATS"), "Off Reb") {
				continue
			}
			defense++
		}
	}
	return offense, defense
}

// GameBreakdowns holds the possession-type and game-split rollups returned
// with every game parse.
type GameBreakdowns struct {
	Offense         map[string]*PossessionBucket
	Defense         map[string]*PossessionBucket
	PeriodicOffense map[string]*PossessionBucket
	PeriodicDefense map[string]*PossessionBucket
}

func newBuckets(keys []string) map[string]*PossessionBucket {
	m := make(map[string]*PossessionBucket, len(keys))
	for _, k := range keys {
		m[k] = &PossessionBucket{}
	}
	return m
}

// BuildGameBreakdowns rolls possessions up by possession-type tag and by
// game split. Neutral rows are excluded from counts everywhere; Off Reb
// continuations are additionally excluded from the split counts. Points
// accrue regardless, so a putback after an offensive rebound still scores
// in its half.
func BuildGameBreakdowns(t *Table) GameBreakdowns {
	b := GameBreakdowns{
		Offense:         newBuckets(breakdownTokens),
		Defense:         newBuckets(breakdownTokens),
		PeriodicOffense: newBuckets(gameSplits),
		PeriodicDefense: newBuckets(gameSplits),
	}

	known := make(map[string]bool, len(breakdownTokens))
	for _, tok := range breakdownTokens {
		known[tok] = true
	}

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		rowType := r.Type()
		if rowType != "Offense" && rowType != "Defense" {
			continue
		}

		team := r.Get("TEAM")
		isNeutral := strings.Contains(team, "Neutral")
		var isOffReb bool
		var pts int
		if rowType == "Offense" {
			isOffReb = strings.Contains(team, "Off Reb")
			pts = offenseRowPoints(t, r)
		} else {
			isOffReb = strings.Contains(r.Get("OPP STATS"), "Off Reb")
			pts = defenseRowPoints(r)
		}

		byType := b.Offense
		bySplit := b.PeriodicOffense
		if rowType == "Defense" {
			byType = b.Defense
			bySplit = b.PeriodicDefense
		}

		for _, tag := range r.Tokens("POSSESSION TYPE") {
			if !known[tag] {
				continue
			}
			if !isNeutral {
				byType[tag].Count++
			}
			byType[tag].Points += pts
		}

		split := strings.TrimSpace(r.Get("GAME SPLITS"))
		if bucket, ok := bySplit[split]; ok {
			if !isNeutral && !isOffReb {
				bucket.Count++
			}
			bucket.Points += pts
		}
	}
	return b
}
