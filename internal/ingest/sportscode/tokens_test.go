package sportscode

import (
	"reflect"
	"testing"
)

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"Empty", "", nil},
		{"WhitespaceOnly", "  \t ", nil},
		{"Single", "ATR+", []string{"ATR+"}},
		{"CommaList", "2FG+, Assist", []string{"2FG+", "Assist"}},
		{"Semicolons", "FT+; FT-", []string{"FT+", "FT-"}},
		{"Newlines", "Turnover\nFouled", []string{"Turnover", "Fouled"}},
		{"Tabs", "Bump +\tBump -", []string{"Bump +", "Bump -"}},
		{"EnDash", "Bump –", []string{"Bump -"}},
		{"EmDash", "Low —", []string{"Low -"}},
		{"MinusSign", "Gap −", []string{"Gap -"}},
		{"EmptySegments", ",, 3FG+ ,,", []string{"3FG+"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTokens(tt.cell); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTokens(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		token string
		want  EventToken
	}{
		{"ATR+", TokenATRMake},
		{"ATR-", TokenATRMiss},
		{"2FG+", Token2FGMake},
		{"2FG-", Token2FGMiss},
		{"3FG+", Token3FGMake},
		{"3FG-", Token3FGMiss},
		{"FT+", TokenFTMake},
		{"FT-", TokenFTMiss},
		{"Assist", TokenAssist},
		{"Pot. Assist", TokenPotAssist},
		{"2nd Assist", TokenSecondAssist},
		{"Turnover", TokenTurnover},
		{"Fouled", TokenFouled},
		{"Foul", TokenFouled},
		{"Reb Tip", TokenRebTip},
		{"LB / Steal", TokenSteal},
		{"Off Reb", TokenOffReb},
		{"Charge Taken", TokenChargeTaken},
		{"Sprint Win", TokenSprintWin},
		{"Sprint Loss", TokenSprintLoss},
		{"Front", TokenContestFront},
		{"No Contest", TokenNoContest},
		{"None", TokenNoContest},
		{"Foul By", TokenFoulBy},
		{"Bump +", TokenBumpPlus},
		{"Gap -", TokenGapMinus},
		{"Contest Pass +", TokenPassContestPlus},
		{"Blowby", TokenBlowby},
		{"Triple Threat", TokenBlowbyTripleThreat},
		{"CW +", TokenCloseWindowPlus},
		{"SD -", TokenShutDoorMinus},
		{"Off +", TokenCrashPlus},
		{"BM -", TokenBackManMinus},
		{"Def +", TokenBoxOutPlus},
		{"Given Up", TokenGivenUp},

		// Case matters; loose matching has credited wrong stats before.
		{"assist", TokenUnrecognized},
		{"atr+", TokenUnrecognized},
		{"FOUL", TokenUnrecognized},
		{"", TokenUnrecognized},
		{"Halftime", TokenUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ClassifyToken(tt.token); got != tt.want {
				t.Errorf("ClassifyToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestPointValue(t *testing.T) {
	tests := []struct {
		tok  EventToken
		want int
	}{
		{TokenATRMake, 2},
		{Token2FGMake, 2},
		{Token3FGMake, 3},
		{TokenFTMake, 1},
		{TokenATRMiss, 0},
		{TokenTurnover, 0},
		{TokenUnrecognized, 0},
	}

	for _, tt := range tests {
		if got := PointValue(tt.tok); got != tt.want {
			t.Errorf("PointValue(%v) = %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestCountBumpTokens(t *testing.T) {
	tests := []struct {
		name      string
		cells     []string
		wantPlus  int
		wantMinus int
	}{
		{"Empty", nil, 0, 0},
		{"Exact", []string{"Bump +"}, 1, 0},
		{"EmDash", []string{"Bump —"}, 0, 1},
		{"Embedded", []string{"late rotation Bump + then Bump - on the roll"}, 1, 1},
		{"TwiceInOneCell", []string{"Bump +, Bump +"}, 2, 0},
		{"CaseInsensitive", []string{"bump +"}, 1, 0},
		{"NoFalsePositive", []string{"Bumped into screen"}, 0, 0},
		{"PlusDigitIsFreeText", []string{"Bump +1 late on the roll"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plus, minus := CountBumpTokens(tt.cells)
			if plus != tt.wantPlus || minus != tt.wantMinus {
				t.Errorf("CountBumpTokens(%v) = (%d, %d), want (%d, %d)",
					tt.cells, plus, minus, tt.wantPlus, tt.wantMinus)
			}
		})
	}
}

func TestCountLowManTokens(t *testing.T) {
	plus, minus := CountLowManTokens([]string{"Low Man +", "slow Low Man - on the dive", "Low Man–", "Low Man +2"})
	if plus != 1 {
		t.Errorf("plus = %d, want 1", plus)
	}
	if minus != 2 {
		t.Errorf("minus = %d, want 2", minus)
	}
}

func TestBlueCollarLineAddAndTotal(t *testing.T) {
	var b BlueCollarLine
	if w := b.Add("charge_taken"); w != 4.0 {
		t.Errorf("Add(charge_taken) weight = %v, want 4.0", w)
	}
	if w := b.Add("reb_tip"); w != 0.5 {
		t.Errorf("Add(reb_tip) weight = %v, want 0.5", w)
	}
	if w := b.Add("nonsense"); w != 0 {
		t.Errorf("Add(nonsense) weight = %v, want 0", w)
	}
	if got := b.Total(); got != 4.5 {
		t.Errorf("Total() = %v, want 4.5", got)
	}
	if b.ChargeTaken != 1 || b.RebTip != 1 {
		t.Errorf("counters = %+v, want one charge taken and one reb tip", b)
	}
}
