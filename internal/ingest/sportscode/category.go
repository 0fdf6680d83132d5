package sportscode

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical practice session categories keyed by their lowercased aliases.
// Upload forms and spreadsheet names disagree on pluralization, so both
// spellings of "Official Practice" fold to one category.
var categoryAliases = map[string]string{
	"summer workouts":    "Summer Workouts",
	"fall workouts":      "Fall Workouts",
	"official practice":  "Official Practice",
	"official practices": "Official Practice",
}

// NormalizeCategory returns the canonical session category for name.
// Unknown names pass through trimmed; new categories should not be silently
// dropped just because this table has not caught up.
func NormalizeCategory(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	if canonical, ok := categoryAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

var filenameDateRe = regexp.MustCompile(`^(\d{2})_(\d{2})_(\d{2})\b`)

// DateFromFilename extracts the session date from a "YY_MM_DD ..." export
// filename. Returns the zero time when the name does not lead with a date
// or the date is not a real calendar day.
func DateFromFilename(name string) (time.Time, bool) {
	base := filepath.Base(name)
	m := filenameDateRe.FindStringSubmatch(base)
	if m == nil {
		return time.Time{}, false
	}
	yy, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	dd, _ := strconv.Atoi(m[3])

	d := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if d.Year() != 2000+yy || d.Month() != time.Month(mm) || d.Day() != dd {
		return time.Time{}, false
	}
	return d, true
}
