package cooe

import (
	"context"
	"errors"
	"math"
	"testing"
)

type key struct {
	gameID   int64
	segment  string
	playerID int64
}

// fakeSource serves canned per-game summaries keyed by game, segment, and
// player.
type fakeSource struct {
	summaries map[key]Summary
	err       error
}

func (f *fakeSource) GamePossessionSummary(ctx context.Context, gameID int64, segment string, playerID int64) (Summary, error) {
	if f.err != nil {
		return Summary{}, f.err
	}
	return f.summaries[key{gameID, segment, playerID}], nil
}

func TestPlayerOnOffEmptyGames(t *testing.T) {
	stats, err := PlayerOnOff(context.Background(), &fakeSource{}, nil, 7)
	if err != nil {
		t.Fatalf("PlayerOnOff() error = %v", err)
	}
	if stats != nil {
		t.Errorf("PlayerOnOff() = %+v, want nil for no games", stats)
	}
}

func TestPlayerOnOffPropagatesErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}
	_, err := PlayerOnOff(context.Background(), src, []int64{1}, 7)
	if err == nil {
		t.Fatal("PlayerOnOff() error = nil, want wrapped source error")
	}
}

func TestPlayerOnOffSumsBeforeDividing(t *testing.T) {
	// Game 1: 10 team possessions for 10 points, 5 with the player on for
	// 8. Game 2: 40 for 40, 20 on for 16. Averaging per-game PPP would
	// give 1.3 on offense; summing raw totals gives 0.96.
	src := &fakeSource{summaries: map[key]Summary{
		{1, "Offense", 0}: {Possessions: 10, Points: 10},
		{2, "Offense", 0}: {Possessions: 40, Points: 40},
		{1, "Offense", 7}: {Possessions: 5, Points: 8},
		{2, "Offense", 7}: {Possessions: 20, Points: 16},
		{1, "Defense", 0}: {Possessions: 10, Points: 12},
		{2, "Defense", 0}: {Possessions: 40, Points: 36},
		{1, "Defense", 7}: {Possessions: 5, Points: 4},
		{2, "Defense", 7}: {Possessions: 20, Points: 20},
	}}

	stats, err := PlayerOnOff(context.Background(), src, []int64{1, 2}, 7)
	if err != nil {
		t.Fatalf("PlayerOnOff() error = %v", err)
	}

	if stats.TeamOffensivePossessions != 50 || stats.OffensivePossessionsOn != 25 {
		t.Errorf("offense possessions = %d team, %d on, want 50/25",
			stats.TeamOffensivePossessions, stats.OffensivePossessionsOn)
	}
	if stats.OffensivePossessionsOff != 25 || stats.PointsOffOffense != 26 {
		t.Errorf("offense off bucket = %d poss %v pts, want 25/26",
			stats.OffensivePossessionsOff, stats.PointsOffOffense)
	}
	if stats.PPPOnOffense == nil || *stats.PPPOnOffense != 0.96 {
		t.Errorf("PPPOnOffense = %v, want 0.96 from summed totals", stats.PPPOnOffense)
	}
	if stats.PPPOffOffense == nil || *stats.PPPOffOffense != 1.04 {
		t.Errorf("PPPOffOffense = %v, want 1.04", stats.PPPOffOffense)
	}
	if stats.OffensiveLeverage == nil || math.Abs(*stats.OffensiveLeverage-(-0.08)) > 1e-9 {
		t.Errorf("OffensiveLeverage = %v, want -0.08", stats.OffensiveLeverage)
	}

	// Defense leverage flips: allowing fewer points with the player on is
	// positive.
	if stats.PPPOnDefense == nil || *stats.PPPOnDefense != 0.96 {
		t.Errorf("PPPOnDefense = %v, want 0.96", stats.PPPOnDefense)
	}
	if stats.PPPOffDefense == nil || *stats.PPPOffDefense != 0.96 {
		t.Errorf("PPPOffDefense = %v, want 0.96", stats.PPPOffDefense)
	}
	if stats.DefensiveLeverage == nil || *stats.DefensiveLeverage != 0 {
		t.Errorf("DefensiveLeverage = %v, want off minus on", stats.DefensiveLeverage)
	}

	if stats.OffPossessionPct == nil || *stats.OffPossessionPct != 0.5 {
		t.Errorf("OffPossessionPct = %v, want 0.5", stats.OffPossessionPct)
	}
}

func TestPlayerOnOffDedupesGames(t *testing.T) {
	src := &fakeSource{summaries: map[key]Summary{
		{1, "Offense", 0}: {Possessions: 10, Points: 10},
		{1, "Offense", 7}: {Possessions: 4, Points: 6},
	}}

	stats, err := PlayerOnOff(context.Background(), src, []int64{1, 1, 1}, 7)
	if err != nil {
		t.Fatalf("PlayerOnOff() error = %v", err)
	}
	if stats.TeamOffensivePossessions != 10 {
		t.Errorf("TeamOffensivePossessions = %d, want 10 with duplicates collapsed",
			stats.TeamOffensivePossessions)
	}
}

func TestPlayerOnOffClampsAndNils(t *testing.T) {
	// Tagging error: the player appears on more possessions than the team
	// played. The off bucket clamps to zero and its PPP stays nil.
	src := &fakeSource{summaries: map[key]Summary{
		{1, "Offense", 0}: {Possessions: 5, Points: 4},
		{1, "Offense", 7}: {Possessions: 8, Points: 9},
	}}

	stats, err := PlayerOnOff(context.Background(), src, []int64{1}, 7)
	if err != nil {
		t.Fatalf("PlayerOnOff() error = %v", err)
	}
	if stats.OffensivePossessionsOff != 0 || stats.PointsOffOffense != 0 {
		t.Errorf("off bucket = %d poss %v pts, want clamped to zero",
			stats.OffensivePossessionsOff, stats.PointsOffOffense)
	}
	if stats.PPPOffOffense != nil {
		t.Errorf("PPPOffOffense = %v, want nil on an empty bucket", *stats.PPPOffOffense)
	}
	if stats.PPPOnDefense != nil || stats.DefensiveLeverage != nil {
		t.Error("defense stats should be nil with no defensive possessions")
	}
}
