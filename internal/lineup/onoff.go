package lineup

import "strings"

// OnOff is a player's points-per-possession split for one side. A nil PPP
// means the player had zero possessions in that bucket, which reports render
// as blank.
type OnOff struct {
	OnPossessions  int
	OnPoints       int
	OffPossessions int
	OffPoints      int
	OnPPP          *float64
	OffPPP         *float64
}

func ppp(pts, poss int) *float64 {
	if poss <= 0 {
		return nil
	}
	v := float64(pts) / float64(poss)
	return &v
}

// ComputeOnOff splits each side's possessions into on-floor and off-floor
// buckets per player. Off totals are always team total minus on total,
// clamped at zero; a tagging mistake that puts a player on the floor more
// often than the team played must not go negative downstream.
func ComputeOnOff(possessions []Possession) map[string]map[string]OnOff {
	type totals struct {
		poss int
		pts  int
	}
	teamTotals := make(map[string]*totals)
	onTotals := make(map[string]map[string]*totals)

	for _, poss := range possessions {
		side := strings.ToLower(poss.Side)
		tt, ok := teamTotals[side]
		if !ok {
			tt = &totals{}
			teamTotals[side] = tt
		}
		tt.poss++
		tt.pts += poss.Points

		for _, player := range poss.Players {
			bySide, ok := onTotals[player]
			if !ok {
				bySide = make(map[string]*totals)
				onTotals[player] = bySide
			}
			on, ok := bySide[side]
			if !ok {
				on = &totals{}
				bySide[side] = on
			}
			on.poss++
			on.pts += poss.Points
		}
	}

	result := make(map[string]map[string]OnOff, len(onTotals))
	for player, bySide := range onTotals {
		result[player] = make(map[string]OnOff, len(bySide))
		for side, on := range bySide {
			team := teamTotals[side]
			offPoss := team.poss - on.poss
			if offPoss < 0 {
				offPoss = 0
			}
			offPts := team.pts - on.pts
			if offPts < 0 {
				offPts = 0
			}
			result[player][side] = OnOff{
				OnPossessions:  on.poss,
				OnPoints:       on.pts,
				OffPossessions: offPoss,
				OffPoints:      offPts,
				OnPPP:          ppp(on.pts, on.poss),
				OffPPP:         ppp(offPts, offPoss),
			}
		}
	}
	return result
}
