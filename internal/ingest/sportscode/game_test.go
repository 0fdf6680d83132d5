package sportscode

import (
	"strings"
	"testing"
)

const gameCSV = "Row,TEAM,OPP STATS,POSSESSION TYPE,PAINT TOUCHES,SHOT CLOCK,SHOT CLOCK PT,GAME SPLITS,PLAYER POSSESSIONS,Shot Location,#4 Smith,#23 Jones\n" +
	// Smith hits a three, Jones is credited to the row but the assist
	// belongs to the shooter.
	"Offense,,,Man,,,,1st Half,\"#4 Smith, #23 Jones\",Wing,3FG+,Assist\n" +
	// Missed two, drawn foul, one-of-two at the line.
	"Offense,,,Man,,,,1st Half,#4 Smith,,\"2FG-, Fouled, FT+, FT-\",\n" +
	// Putback after the team rebound; the 2nd assist also credits the shooter.
	"Offense,Off Reb,,Transition,,,,1st Half,#23 Jones,,2nd Assist,ATR+\n" +
	// Neutral row, turnover still counts.
	"Offense,Neutral,,Man,,,,1st Half,#4 Smith,,Turnover,\n" +
	// Opponent make plus our contest grades.
	"Defense,,\"2FG+, Assist\",Man,,,,2nd Half,#4 Smith,,Contest,\"Bump +, Gap -\"\n" +
	"Opponent Blue Collar Plays,,\"Charge Taken, Misc\",,,,,,,,,\n" +
	"DEF Note,,,,,,,,,,Floor Dive,\n" +
	// Jersey hustle row: the row type names the player column.
	"#23 Jones,,,,,,,,,,,Deflection\n" +
	// Shooter precedence: ATR outranks 2FG in a column, first column wins.
	"Offense,,,Man,,,,2nd Half,\"#4 Smith, #23 Jones\",,\"ATR-, 2FG+\",3FG+\n"

func parseGameFixture(t *testing.T) *GameResult {
	t.Helper()
	res, err := ParseGame(mustTable(t, gameCSV))
	if err != nil {
		t.Fatalf("ParseGame() error = %v", err)
	}
	return res
}

func TestParseGameRequiresColumns(t *testing.T) {
	_, err := ParseGame(mustTable(t, "Row,TEAM\nOffense,\n"))
	if err == nil {
		t.Fatal("ParseGame() error = nil, want missing-column error")
	}
	if !strings.Contains(err.Error(), "OPP STATS") {
		t.Errorf("error = %q, want missing columns listed", err)
	}
}

func TestParseGamePlayerLines(t *testing.T) {
	res := parseGameFixture(t)

	smith, ok := res.Players["#4 Smith"]
	if !ok {
		t.Fatal("no line for #4 Smith")
	}
	if smith.Points != 4 {
		t.Errorf("Smith.Points = %d, want 4", smith.Points)
	}
	if smith.FG3Makes != 1 || smith.FG3Attempts != 1 {
		t.Errorf("Smith 3FG = %d/%d, want 1/1", smith.FG3Makes, smith.FG3Attempts)
	}
	if smith.FG2Makes != 0 || smith.FG2Attempts != 1 {
		t.Errorf("Smith 2FG = %d/%d, want 0/1", smith.FG2Makes, smith.FG2Attempts)
	}
	// The column held both ATR- and 2FG+; ATR wins and no second shot is
	// recorded for the row.
	if smith.ATRMakes != 0 || smith.ATRAttempts != 1 {
		t.Errorf("Smith ATR = %d/%d, want 0/1", smith.ATRMakes, smith.ATRAttempts)
	}
	if smith.FTM != 1 || smith.FTA != 2 {
		t.Errorf("Smith FT = %d/%d, want 1/2", smith.FTM, smith.FTA)
	}
	if smith.Assists != 1 {
		t.Errorf("Smith.Assists = %d, want the assist credited to the shooter", smith.Assists)
	}
	if smith.Turnovers != 1 || smith.FoulBy != 1 {
		t.Errorf("Smith TO/FoulBy = %d/%d, want 1/1", smith.Turnovers, smith.FoulBy)
	}
	if smith.ContestEarly != 1 {
		t.Errorf("Smith.ContestEarly = %d, want 1", smith.ContestEarly)
	}
	if smith.Blue.FloorDive != 1 {
		t.Errorf("Smith.Blue.FloorDive = %d, want 1", smith.Blue.FloorDive)
	}
	if len(smith.ShotDetails) != 3 {
		t.Errorf("len(Smith.ShotDetails) = %d, want 3", len(smith.ShotDetails))
	}

	jones, ok := res.Players["#23 Jones"]
	if !ok {
		t.Fatal("no line for #23 Jones")
	}
	if jones.Points != 2 || jones.ATRMakes != 1 || jones.ATRAttempts != 1 {
		t.Errorf("Jones = %d pts, ATR %d/%d, want 2 pts on 1/1",
			jones.Points, jones.ATRMakes, jones.ATRAttempts)
	}
	// Jones's 3FG+ sat behind Smith's shot column and must not count.
	if jones.FG3Attempts != 0 {
		t.Errorf("Jones.FG3Attempts = %d, want 0 behind the first shot column", jones.FG3Attempts)
	}
	if jones.SecondAssists != 1 {
		t.Errorf("Jones.SecondAssists = %d, want the 2nd assist credited to the shooter", jones.SecondAssists)
	}
	if jones.BumpPositive != 1 || jones.CollisionGapPositive != 1 || jones.CollisionGapMissed != 1 {
		t.Errorf("Jones bump/gap = %d/%d/%d, want bump to double-write the gap fields",
			jones.BumpPositive, jones.CollisionGapPositive, jones.CollisionGapMissed)
	}
	if jones.Blue.Deflection != 1 {
		t.Errorf("Jones.Blue.Deflection = %d, want 1", jones.Blue.Deflection)
	}
}

func TestParseGameShotDetails(t *testing.T) {
	res := parseGameFixture(t)

	sd := res.Players["#4 Smith"].ShotDetails[0]
	if sd["shot_class"] != "3fg" || sd["result"] != "made" {
		t.Errorf("first shot = %v/%v, want 3fg made", sd["shot_class"], sd["result"])
	}
	if sd["Assisted"] != "Assisted" {
		t.Errorf("first shot Assisted = %q, want flagged", sd["Assisted"])
	}
	if sd["shot_location"] != "Wing" {
		t.Errorf("shot_location = %q, want Wing", sd["shot_location"])
	}

	jonesShot := res.Players["#23 Jones"].ShotDetails[0]
	if jonesShot["Assisted"] != "" {
		t.Error("a 2nd assist alone must not mark the shot assisted")
	}
}

func TestParseGameTeamTotals(t *testing.T) {
	res := parseGameFixture(t)

	if res.Team.Points != 6 {
		t.Errorf("Team.Points = %d, want 6", res.Team.Points)
	}
	if res.Team.Assists != 1 || res.Team.SecondAssists != 1 || res.Team.Turnovers != 1 {
		t.Errorf("Team A/2ndA/TO = %d/%d/%d, want 1/1/1",
			res.Team.Assists, res.Team.SecondAssists, res.Team.Turnovers)
	}
	if res.OffensivePossessions != 3 || res.DefensivePossessions != 1 {
		t.Errorf("possessions = %d/%d, want 3 offense and 1 defense",
			res.OffensivePossessions, res.DefensivePossessions)
	}
	if res.Team.OffRebounds != 1 {
		t.Errorf("Team.OffRebounds = %d, want 1", res.Team.OffRebounds)
	}
	if res.Team.TotalBlueCollar != 3.0 {
		t.Errorf("Team.TotalBlueCollar = %v, want 3.0", res.Team.TotalBlueCollar)
	}
}

func TestParseGameTeamRates(t *testing.T) {
	res := parseGameFixture(t)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"AssistPct", res.Team.AssistPct, 50},
		{"OrebPct", res.Team.OrebPct, 50},
		{"FTRate", res.Team.FTRate, 50},
		{"TurnoverPct", res.Team.TurnoverPct, 33.3},
		{"GoodShotPct", res.Team.GoodShotPct, 83.33},
		{"TCRPct", res.Team.TCRPct, 16.7},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	// Free throws are recounted from the raw log after the rate pass.
	if res.Team.FTM != 1 || res.Team.FTA != 2 {
		t.Errorf("Team FT = %d/%d, want 1/2 from the raw recount", res.Team.FTM, res.Team.FTA)
	}
}

func TestParseGameOpponent(t *testing.T) {
	res := parseGameFixture(t)

	if res.Opponent.Points != 2 || res.Opponent.FG2Makes != 1 || res.Opponent.FG2Attempts != 1 {
		t.Errorf("opponent = %d pts, 2FG %d/%d, want 2 pts on 1/1",
			res.Opponent.Points, res.Opponent.FG2Makes, res.Opponent.FG2Attempts)
	}
	if res.Opponent.Assists != 1 {
		t.Errorf("Opponent.Assists = %d, want 1", res.Opponent.Assists)
	}
	if res.Opponent.Possessions != 1 {
		t.Errorf("Opponent.Possessions = %d, want 1", res.Opponent.Possessions)
	}
	if res.OpponentBlue.ChargeTaken != 1 || res.OpponentBlue.Misc != 1 {
		t.Errorf("OpponentBlue = %+v, want one charge taken and one misc", res.OpponentBlue)
	}
	if res.Opponent.TotalBlueCollar != 5.0 {
		t.Errorf("Opponent.TotalBlueCollar = %v, want 5.0", res.Opponent.TotalBlueCollar)
	}
}
