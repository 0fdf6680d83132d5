// Package lineup computes on-court unit efficiency and player on/off splits
// from possession lists. It is deliberately storage-free: callers hand it
// in-memory possessions and serialize the results themselves.
package lineup

import (
	"sort"
	"strings"
)

// Possession is the minimal on-floor view of one possession.
type Possession struct {
	Side    string
	Players []string
	Points  int
}

// DefaultGroupSizes are the unit sizes reported by default.
var DefaultGroupSizes = []int{2, 3, 4, 5}

const (
	// GameMinPossessions is the qualification floor for game reports.
	GameMinPossessions = 10
	// PracticeMinPossessions keeps every unit visible for practices,
	// which have far fewer possessions per side.
	PracticeMinPossessions = 1
)

// Efficiencies maps group size to side to a sorted, comma-joined player key
// to points per possession.
type Efficiencies map[int]map[string]map[string]float64

type tally struct {
	poss int
	pts  int
}

// Key returns the canonical order-independent lineup key.
func Key(players []string) string {
	sorted := make([]string, len(players))
	copy(sorted, players)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// combinations calls fn with every k-combination of players, preserving the
// input's relative order within each combination. Floor size is at most ten
// and k at most five, so the eager enumeration stays trivially cheap.
func combinations(players []string, k int, fn func([]string)) {
	n := len(players)
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]string, k)
	for {
		for i, j := range idx {
			combo[i] = players[j]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Compute tallies points and possessions for every unit of each requested
// size and reports PPP for units meeting the minimum possession count. Side
// labels are lowercased so "Offense" and "offense" land in one bucket.
func Compute(possessions []Possession, groupSizes []int, minPoss int) Efficiencies {
	if len(groupSizes) == 0 {
		groupSizes = DefaultGroupSizes
	}

	raw := make(map[int]map[string]map[string]*tally, len(groupSizes))
	for _, size := range groupSizes {
		raw[size] = make(map[string]map[string]*tally)
	}

	for _, poss := range possessions {
		side := strings.ToLower(poss.Side)
		for _, size := range groupSizes {
			if len(poss.Players) < size {
				continue
			}
			bySide, ok := raw[size][side]
			if !ok {
				bySide = make(map[string]*tally)
				raw[size][side] = bySide
			}
			combinations(poss.Players, size, func(combo []string) {
				key := Key(combo)
				t, ok := bySide[key]
				if !ok {
					t = &tally{}
					bySide[key] = t
				}
				t.poss++
				t.pts += poss.Points
			})
		}
	}

	eff := make(Efficiencies, len(groupSizes))
	for size, bySide := range raw {
		eff[size] = make(map[string]map[string]float64, len(bySide))
		for side, units := range bySide {
			out := make(map[string]float64)
			for key, t := range units {
				if t.poss >= minPoss {
					out[key] = float64(t.pts) / float64(t.poss)
				}
			}
			eff[size][side] = out
		}
	}
	return eff
}
