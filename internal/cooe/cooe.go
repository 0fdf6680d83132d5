// Package cooe implements the game-level on/off possession engine. It works
// over per-game possession summaries pulled from storage, so the custom
// stats table can render without re-reading any CSV.
package cooe

import (
	"context"
	"fmt"
)

// Summary is the possession/points aggregate for one game and one side of
// the ball, optionally restricted to possessions with a given player on the
// floor. The possession count already excludes neutral rows and team
// offensive-rebound extensions, clamped at zero.
type Summary struct {
	Possessions int
	Points      float64
}

// SummarySource provides per-game possession summaries. playerID zero means
// the whole team.
type SummarySource interface {
	GamePossessionSummary(ctx context.Context, gameID int64, segment string, playerID int64) (Summary, error)
}

// Stats is the full on/off report for one player across a set of games.
// PPP values are nil when their possession bucket is empty.
type Stats struct {
	OffensivePossessionsOn  int
	DefensivePossessionsOn  int
	OffensivePossessionsOff int
	DefensivePossessionsOff int

	TeamOffensivePossessions int
	TeamDefensivePossessions int

	PointsOnOffense  float64
	PointsOnDefense  float64
	PointsOffOffense float64
	PointsOffDefense float64

	PPPOnOffense  *float64
	PPPOnDefense  *float64
	PPPOffOffense *float64
	PPPOffDefense *float64

	// OffensiveLeverage is on PPP minus off PPP; DefensiveLeverage flips
	// the sign because a lower opponent PPP with the player on is good.
	OffensiveLeverage *float64
	DefensiveLeverage *float64

	OffPossessionPct *float64
	DefPossessionPct *float64
}

func safeDiv(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	var out []int64
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// accumulate sums a side's summaries game by game. Multi-game values must
// always come from summed raw totals; averaging per-game PPP outputs gives
// a different, wrong number whenever games have uneven possession counts.
func accumulate(ctx context.Context, src SummarySource, gameIDs []int64, segment string, playerID int64) (Summary, error) {
	var total Summary
	for _, gid := range gameIDs {
		s, err := src.GamePossessionSummary(ctx, gid, segment, playerID)
		if err != nil {
			return Summary{}, fmt.Errorf("summarizing game %d %s possessions: %w", gid, segment, err)
		}
		total.Possessions += s.Possessions
		total.Points += s.Points
	}
	return total, nil
}

// PlayerOnOff computes the on/off report for one player across the given
// games.
func PlayerOnOff(ctx context.Context, src SummarySource, gameIDs []int64, playerID int64) (*Stats, error) {
	gameIDs = dedupe(gameIDs)
	if len(gameIDs) == 0 {
		return nil, nil
	}

	teamOff, err := accumulate(ctx, src, gameIDs, "Offense", 0)
	if err != nil {
		return nil, err
	}
	teamDef, err := accumulate(ctx, src, gameIDs, "Defense", 0)
	if err != nil {
		return nil, err
	}
	playerOff, err := accumulate(ctx, src, gameIDs, "Offense", playerID)
	if err != nil {
		return nil, err
	}
	playerDef, err := accumulate(ctx, src, gameIDs, "Defense", playerID)
	if err != nil {
		return nil, err
	}

	offPossOff := teamOff.Possessions - playerOff.Possessions
	if offPossOff < 0 {
		offPossOff = 0
	}
	defPossOff := teamDef.Possessions - playerDef.Possessions
	if defPossOff < 0 {
		defPossOff = 0
	}
	offPtsOff := teamOff.Points - playerOff.Points
	if offPtsOff < 0 {
		offPtsOff = 0
	}
	defPtsOff := teamDef.Points - playerDef.Points
	if defPtsOff < 0 {
		defPtsOff = 0
	}

	s := &Stats{
		OffensivePossessionsOn:   playerOff.Possessions,
		DefensivePossessionsOn:   playerDef.Possessions,
		OffensivePossessionsOff:  offPossOff,
		DefensivePossessionsOff:  defPossOff,
		TeamOffensivePossessions: teamOff.Possessions,
		TeamDefensivePossessions: teamDef.Possessions,
		PointsOnOffense:          playerOff.Points,
		PointsOnDefense:          playerDef.Points,
		PointsOffOffense:         offPtsOff,
		PointsOffDefense:         defPtsOff,
	}

	s.PPPOnOffense = safeDiv(playerOff.Points, float64(playerOff.Possessions))
	s.PPPOnDefense = safeDiv(playerDef.Points, float64(playerDef.Possessions))
	s.PPPOffOffense = safeDiv(offPtsOff, float64(offPossOff))
	s.PPPOffDefense = safeDiv(defPtsOff, float64(defPossOff))

	s.OffensiveLeverage = diff(s.PPPOnOffense, s.PPPOffOffense)
	s.DefensiveLeverage = diff(s.PPPOffDefense, s.PPPOnDefense)

	s.OffPossessionPct = safeDiv(float64(playerOff.Possessions), float64(teamOff.Possessions))
	s.DefPossessionPct = safeDiv(float64(playerDef.Possessions), float64(teamDef.Possessions))

	return s, nil
}
