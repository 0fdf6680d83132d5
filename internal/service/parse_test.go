package service

import (
	"database/sql"
	"reflect"
	"strings"
	"testing"

	"github.com/hoopsight/courtlog/internal/ingest/sportscode"
	"github.com/hoopsight/courtlog/internal/store"
)

func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Errorf("nullString(\"\") = %+v, want invalid", ns)
	}
	if ns := nullString("Wing"); !ns.Valid || ns.String != "Wing" {
		t.Errorf("nullString(Wing) = %+v, want valid Wing", ns)
	}
}

func TestLineupPossessions(t *testing.T) {
	records := []sportscode.PossessionRecord{
		{Side: "Crimson", Segment: "Offense", PlayersOnFloor: []string{"#4 Smith"}, PointsScored: 2},
		{Side: "White", Segment: "Defense", PointsScored: 0},
	}

	got := lineupPossessions(records)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Side != "Crimson" || got[0].Points != 2 || got[0].Players[0] != "#4 Smith" {
		t.Errorf("first possession = %+v", got[0])
	}
}

func TestRequireExistingGame(t *testing.T) {
	err := requireExistingGame(nil, "24_11_02 Opponent.csv")
	if err == nil {
		t.Fatal("requireExistingGame(nil) = nil, want refusal error")
	}
	if !strings.Contains(err.Error(), "refusing to create") || !strings.Contains(err.Error(), "24_11_02 Opponent.csv") {
		t.Errorf("error = %q, want refusal naming the file", err)
	}

	if err := requireExistingGame(&store.Game{GameID: 3}, "a.csv"); err != nil {
		t.Errorf("requireExistingGame(existing) = %v, want nil", err)
	}
}

func TestDropUnrostered(t *testing.T) {
	players := map[string]*sportscode.PlayerLine{
		"#4 Smith":    sportscode.NewPlayerLine("#4 Smith"),
		"#99 Walk On": sportscode.NewPlayerLine("#99 Walk On"),
	}
	possessions := []sportscode.PossessionRecord{
		{PlayersOnFloor: []string{"#4 Smith", "#99 Walk On"}},
		{PlayersOnFloor: []string{"#99 Walk On"}},
	}
	roster := map[string]*store.RosterPlayer{
		"#4 Smith": {RosterID: 1, PlayerName: "#4 Smith"},
	}

	dropped := dropUnrostered(players, possessions, roster)

	if !reflect.DeepEqual(dropped, []string{"#99 Walk On"}) {
		t.Errorf("dropped = %v, want [#99 Walk On]", dropped)
	}
	if _, ok := players["#99 Walk On"]; ok {
		t.Error("unrostered line should be removed")
	}
	if _, ok := players["#4 Smith"]; !ok {
		t.Error("rostered line should survive")
	}
	if !reflect.DeepEqual(possessions[0].PlayersOnFloor, []string{"#4 Smith"}) {
		t.Errorf("floor[0] = %v, want [#4 Smith]", possessions[0].PlayersOnFloor)
	}
	if len(possessions[1].PlayersOnFloor) != 0 {
		t.Errorf("floor[1] = %v, want empty", possessions[1].PlayersOnFloor)
	}
}

func TestPlayerLineToStats(t *testing.T) {
	line := sportscode.NewPlayerLine("#4 Smith")
	line.Points = 7
	line.FG3Makes, line.FG3Attempts = 1, 2
	line.ContestSplits["fg3_no_contest_attempts"] = 3
	line.ContestSplits["fg3_no_contest_makes"] = 2
	line.ShotDetails = append(line.ShotDetails,
		sportscode.NewShotDetail("3fg", "made", "Man", "Wing", true))

	gameID := sql.NullInt64{Int64: 9, Valid: true}
	ps, err := playerLineToStats(1, gameID, sql.NullInt64{}, line)
	if err != nil {
		t.Fatalf("playerLineToStats() error = %v", err)
	}

	if ps.SeasonID != 1 || !ps.GameID.Valid || ps.GameID.Int64 != 9 || ps.PracticeID.Valid {
		t.Errorf("identity fields = %+v", ps)
	}
	if ps.PlayerName != "#4 Smith" || ps.Points != 7 {
		t.Errorf("name/points = %s/%d, want #4 Smith with 7", ps.PlayerName, ps.Points)
	}
	if ps.FG3NoContestAttempts != 3 || ps.FG3NoContestMakes != 2 {
		t.Errorf("contest splits = %d/%d, want 3/2", ps.FG3NoContestAttempts, ps.FG3NoContestMakes)
	}
	if !ps.ShotTypeDetails.Valid || !strings.Contains(ps.ShotTypeDetails.String, `"shot_class":"3fg"`) {
		t.Errorf("ShotTypeDetails = %+v, want serialized shot record", ps.ShotTypeDetails)
	}
	if ps.StatDetails.Valid {
		t.Error("StatDetails should stay null with no stat events")
	}
}
