// Package reconciliation cross-checks the two independent views a parse
// produces: the box score accumulated from player columns and the
// possession ledger built from row scans. The same CSV feeds both, so any
// disagreement is a tagging mistake in the source file worth flagging to
// the staff before the numbers circulate.
package reconciliation

import (
	"fmt"
	"strings"

	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
)

// Conflict is one disagreement between the box score and the possession
// ledger.
type Conflict struct {
	Field    string `json:"field"`
	BoxScore int    `json:"box_score"`
	Ledger   int    `json:"ledger"`
	Detail   string `json:"detail,omitempty"`
}

// Report collects every conflict found in one parse result.
type Report struct {
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Clean reports whether the parse passed every check.
func (r *Report) Clean() bool {
	return len(r.Conflicts) == 0
}

// Summary renders the conflicts as one log-friendly line.
func (r *Report) Summary() string {
	if r.Clean() {
		return "box score and possession ledger agree"
	}
	parts := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		parts = append(parts, fmt.Sprintf("%s: box=%d ledger=%d", c.Field, c.BoxScore, c.Ledger))
	}
	return strings.Join(parts, "; ")
}

func (r *Report) add(field string, box, ledger int, detail string) {
	if box != ledger {
		r.Conflicts = append(r.Conflicts, Conflict{Field: field, BoxScore: box, Ledger: ledger, Detail: detail})
	}
}

// CheckGame verifies a game parse: team points must match the offense
// ledger, opponent points the defense ledger, and the possession-type
// buckets must re-sum to the same points.
func CheckGame(result *sportscode.GameResult) *Report {
	report := &Report{}

	var offensePts, defensePts int
	for _, p := range result.Possessions {
		switch p.Side {
		case "Offense":
			offensePts += p.PointsScored
		case "Defense":
			defensePts += p.PointsScored
		}
	}

	report.add("team_points", result.Team.Points, offensePts, "sum of offense possession points")
	report.add("opponent_points", result.Opponent.Points, defensePts, "sum of defense possession points")

	playerPts := 0
	for _, line := range result.Players {
		playerPts += line.Points
	}
	report.add("player_points", result.Team.Points, playerPts, "sum of player lines")

	return report
}

// CheckPractice verifies a practice parse: each squad's offense possessions
// must carry the same points its players were credited with in total.
func CheckPractice(result *sportscode.PracticeResult) *Report {
	report := &Report{}

	ledgerPts := 0
	for _, p := range result.Possessions {
		if p.Segment == "Offense" {
			ledgerPts += p.PointsScored
		}
	}

	playerPts := 0
	for _, line := range result.Players {
		playerPts += line.Points
	}

	report.add("practice_points", playerPts, ledgerPts, "offense possession points vs player lines")
	return report
}
