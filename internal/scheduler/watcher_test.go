package scheduler

import "testing"

func TestOpponentFromFilename(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"DateAndOpponent", "24_11_04 State College.csv", "State College"},
		{"MultiWordOpponent", "24_11_04 State College Tech.csv", "State College Tech"},
		{"NoOpponent", "24_11_04.csv", "Unknown (24_11_04)"},
		{"NoDate", "scrimmage.csv", "Unknown (scrimmage)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opponentFromFilename(tt.file); got != tt.want {
				t.Errorf("opponentFromFilename(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
