package lineup

import (
	"reflect"
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		want    string
	}{
		{"AlreadySorted", []string{"#12 Doe", "#4 Smith"}, "#12 Doe,#4 Smith"},
		{"OrderIndependent", []string{"#4 Smith", "#12 Doe"}, "#12 Doe,#4 Smith"},
		{"Single", []string{"#4 Smith"}, "#4 Smith"},
		{"Empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.players); got != tt.want {
				t.Errorf("Key(%v) = %q, want %q", tt.players, got, tt.want)
			}
		})
	}
}

func TestKeyDoesNotMutateInput(t *testing.T) {
	players := []string{"#4 Smith", "#12 Doe"}
	Key(players)
	if !reflect.DeepEqual(players, []string{"#4 Smith", "#12 Doe"}) {
		t.Errorf("input mutated: %v", players)
	}
}

func TestCombinations(t *testing.T) {
	var got [][]string
	combinations([]string{"a", "b", "c"}, 2, func(combo []string) {
		got = append(got, append([]string(nil), combo...))
	})

	want := [][]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combinations() = %v, want %v", got, want)
	}

	var none [][]string
	combinations([]string{"a"}, 2, func(combo []string) {
		none = append(none, combo)
	})
	if len(none) != 0 {
		t.Errorf("combinations with k > n emitted %v", none)
	}
}

func TestCompute(t *testing.T) {
	possessions := []Possession{
		{Side: "Crimson", Players: []string{"#4 Smith", "#12 Doe"}, Points: 2},
		{Side: "crimson", Players: []string{"#4 Smith", "#12 Doe"}, Points: 0},
		{Side: "Crimson", Players: []string{"#4 Smith", "#23 Jones"}, Points: 3},
		{Side: "White", Players: []string{"#10 Lee", "#11 Ray"}, Points: 1},
	}

	eff := Compute(possessions, []int{2}, 1)

	crimson := eff[2]["crimson"]
	if got := crimson["#12 Doe,#4 Smith"]; got != 1.0 {
		t.Errorf("Doe+Smith PPP = %v, want 1.0 across both side spellings", got)
	}
	if got := crimson["#23 Jones,#4 Smith"]; got != 3.0 {
		t.Errorf("Jones+Smith PPP = %v, want 3.0", got)
	}
	if got := eff[2]["white"]["#10 Lee,#11 Ray"]; got != 1.0 {
		t.Errorf("Lee+Ray PPP = %v, want 1.0", got)
	}
}

func TestComputeMinPossessionFloor(t *testing.T) {
	possessions := []Possession{
		{Side: "Offense", Players: []string{"a", "b"}, Points: 2},
		{Side: "Offense", Players: []string{"a", "b"}, Points: 2},
		{Side: "Offense", Players: []string{"a", "c"}, Points: 2},
	}

	eff := Compute(possessions, []int{2}, 2)
	units := eff[2]["offense"]

	if _, ok := units["a,b"]; !ok {
		t.Error("unit at the floor dropped; minPoss is inclusive")
	}
	if _, ok := units["a,c"]; ok {
		t.Error("unit below the floor reported")
	}
}

func TestComputeSkipsShortFloors(t *testing.T) {
	possessions := []Possession{
		{Side: "Offense", Players: []string{"a", "b"}, Points: 2},
	}

	eff := Compute(possessions, []int{3}, 1)
	if units := eff[3]["offense"]; len(units) != 0 {
		t.Errorf("three-player units from a two-player floor: %v", units)
	}
}

func TestComputeDefaultSizes(t *testing.T) {
	possessions := []Possession{
		{Side: "Offense", Players: []string{"a", "b", "c", "d", "e"}, Points: 2},
	}

	eff := Compute(possessions, nil, 1)
	for _, size := range DefaultGroupSizes {
		if _, ok := eff[size]; !ok {
			t.Errorf("size %d missing from default computation", size)
		}
	}
	if got := eff[5]["offense"]["a,b,c,d,e"]; got != 2.0 {
		t.Errorf("five-player unit PPP = %v, want 2.0", got)
	}
}
