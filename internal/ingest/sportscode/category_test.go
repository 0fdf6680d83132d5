package sportscode

import (
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"CanonicalPassthrough", "Summer Workouts", "Summer Workouts"},
		{"Lowercase", "fall workouts", "Fall Workouts"},
		{"MixedCase", "OFFICIAL PRACTICE", "Official Practice"},
		{"PluralFoldsToSingular", "Official Practices", "Official Practice"},
		{"TrimsWhitespace", "  official practice  ", "Official Practice"},
		{"UnknownPassesThrough", " Skill Development ", "Skill Development"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.in); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   time.Time
		wantOK bool
	}{
		{"Basic", "24_10_07 Official Practice.csv", time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC), true},
		{"FullPath", "/spool/practices/25_01_15 Fall.csv", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"NoPrefix", "Official Practice 24_10_07.csv", time.Time{}, false},
		{"BadMonth", "24_13_07 Practice.csv", time.Time{}, false},
		{"BadDay", "24_02_30 Practice.csv", time.Time{}, false},
		{"DigitRunsOn", "24_10_073 Practice.csv", time.Time{}, false},
		{"Empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateFromFilename(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("DateFromFilename(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DateFromFilename(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}
