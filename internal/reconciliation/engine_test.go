package reconciliation

import (
	"strings"
	"testing"

	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
)

func playerLine(name string, points int) *sportscode.PlayerLine {
	p := sportscode.NewPlayerLine(name)
	p.Points = points
	return p
}

func TestCheckGameClean(t *testing.T) {
	result := &sportscode.GameResult{
		Players: map[string]*sportscode.PlayerLine{
			"#4 Smith":  playerLine("#4 Smith", 5),
			"#23 Jones": playerLine("#23 Jones", 2),
		},
		Possessions: []sportscode.PossessionRecord{
			{Side: "Offense", PointsScored: 3},
			{Side: "Offense", PointsScored: 4},
			{Side: "Defense", PointsScored: 6},
		},
	}
	result.Team.Points = 7
	result.Opponent.Points = 6

	report := CheckGame(result)
	if !report.Clean() {
		t.Errorf("CheckGame() conflicts = %v, want clean", report.Conflicts)
	}
	if got := report.Summary(); got != "box score and possession ledger agree" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestCheckGameConflicts(t *testing.T) {
	result := &sportscode.GameResult{
		Players: map[string]*sportscode.PlayerLine{
			"#4 Smith": playerLine("#4 Smith", 5),
		},
		Possessions: []sportscode.PossessionRecord{
			{Side: "Offense", PointsScored: 3},
			{Side: "Defense", PointsScored: 2},
		},
	}
	result.Team.Points = 5
	result.Opponent.Points = 4

	report := CheckGame(result)
	if report.Clean() {
		t.Fatal("CheckGame() clean, want team and opponent conflicts")
	}
	if len(report.Conflicts) != 2 {
		t.Fatalf("conflicts = %v, want 2", report.Conflicts)
	}

	first := report.Conflicts[0]
	if first.Field != "team_points" || first.BoxScore != 5 || first.Ledger != 3 {
		t.Errorf("first conflict = %+v, want team_points box=5 ledger=3", first)
	}
	second := report.Conflicts[1]
	if second.Field != "opponent_points" || second.BoxScore != 4 || second.Ledger != 2 {
		t.Errorf("second conflict = %+v, want opponent_points box=4 ledger=2", second)
	}

	summary := report.Summary()
	if !strings.Contains(summary, "team_points: box=5 ledger=3") {
		t.Errorf("Summary() = %q, want conflict rendered", summary)
	}
}

func TestCheckGamePlayerPointsDrift(t *testing.T) {
	// Ledger matches the team total but the player lines do not re-sum.
	result := &sportscode.GameResult{
		Players: map[string]*sportscode.PlayerLine{
			"#4 Smith": playerLine("#4 Smith", 4),
		},
		Possessions: []sportscode.PossessionRecord{
			{Side: "Offense", PointsScored: 5},
		},
	}
	result.Team.Points = 5

	report := CheckGame(result)
	if len(report.Conflicts) != 1 || report.Conflicts[0].Field != "player_points" {
		t.Errorf("conflicts = %v, want a single player_points conflict", report.Conflicts)
	}
}

func TestCheckPractice(t *testing.T) {
	result := &sportscode.PracticeResult{
		Players: map[string]*sportscode.PlayerLine{
			"#4 Smith":  playerLine("#4 Smith", 5),
			"#23 Jones": playerLine("#23 Jones", 2),
		},
		Possessions: []sportscode.PossessionRecord{
			{Side: "Crimson", Segment: "Offense", PointsScored: 5},
			{Side: "White", Segment: "Offense", PointsScored: 2},
			// Defense records mirror offense points and must not double.
			{Side: "White", Segment: "Defense", PointsScored: 5},
		},
	}

	if report := CheckPractice(result); !report.Clean() {
		t.Errorf("CheckPractice() conflicts = %v, want clean", report.Conflicts)
	}

	result.Players["#4 Smith"].Points = 7
	report := CheckPractice(result)
	if report.Clean() {
		t.Fatal("CheckPractice() clean, want practice_points conflict")
	}
	c := report.Conflicts[0]
	if c.Field != "practice_points" || c.BoxScore != 9 || c.Ledger != 7 {
		t.Errorf("conflict = %+v, want practice_points box=9 ledger=7", c)
	}
}
