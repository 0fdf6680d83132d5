package sportscode

import (
	"strings"
)

// ShotDetail is one flat shot-attempt record, serialized verbatim into the
// shot_type_details JSON column. Keys are a stable core (shot_class, result,
// possession_type, Assisted/Non-Assisted, shot_location) plus a dynamic set
// of "<class>_<subcategory>" keys pulled from whichever tagging columns the
// export happened to carry.
type ShotDetail map[string]any

// StatEvent is one tagged non-shot event in the stat_details JSON column,
// used for drill-label filtering.
type StatEvent map[string]any

// Suffix columns shared by ATR and 2FG shots. ATR attempts are tagged in the
// 2FG columns of the spreadsheet, so ATR records duplicate every value under
// both prefixes.
var twoPointSuffixes = []string{"Type", "Defenders", "Dribble", "Feet", "Hands", "Other", "PA", "RA"}

// Suffix columns specific to 3FG shots.
var threePointSuffixes = []string{"Contest", "Footwork", "Good/Bad", "Line", "Move", "Pocket", "Shrink", "Type"}

var schemeSuffixes = []string{"Attack", "Drive", "Pass"}

func slugSuffix(suffix string) string {
	s := strings.ToLower(suffix)
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// NewShotDetail builds the core of a shot record. assisted decides which of
// the mutually exclusive Assisted / Non-Assisted flags is set.
func NewShotDetail(shotClass, result, possessionType, shotLocation string, assisted bool) ShotDetail {
	sd := ShotDetail{
		"shot_class":      shotClass,
		"result":          result,
		"possession_type": strings.TrimSpace(possessionType),
		"shot_location":   shotLocation,
	}
	if assisted {
		sd["Assisted"] = "Assisted"
		sd["Non-Assisted"] = ""
	} else {
		sd["Assisted"] = ""
		sd["Non-Assisted"] = "Non-Assisted"
	}
	return sd
}

// CaptureSubcategories copies the class-appropriate tagging columns of the
// row into the record. For ATR the 2FG columns are recorded twice, once under
// "2fg_*" and once under "atr_*".
func CaptureSubcategories(sd ShotDetail, t *Table, r Row, shotClass string) {
	switch shotClass {
	case "atr", "2fg":
		prefixes := []string{"2fg"}
		if shotClass == "atr" {
			prefixes = append(prefixes, "atr")
		}
		for _, suffix := range twoPointSuffixes {
			col := "2FG (" + suffix + ")"
			if !t.HasColumn(col) {
				continue
			}
			for _, prefix := range prefixes {
				sd[prefix+"_"+slugSuffix(suffix)] = r.Get(col)
			}
		}
		for _, suffix := range schemeSuffixes {
			col := "2FG Scheme (" + suffix + ")"
			if !t.HasColumn(col) {
				continue
			}
			val := strings.TrimSpace(r.Get(col))
			if val == "" {
				continue
			}
			for _, prefix := range prefixes {
				sd[prefix+"_scheme_"+strings.ToLower(suffix)] = val
			}
		}
	case "3fg":
		for _, suffix := range threePointSuffixes {
			col := "3FG (" + suffix + ")"
			if !t.HasColumn(col) {
				continue
			}
			sd["3fg_"+slugSuffix(suffix)] = r.Get(col)
		}
		for _, suffix := range schemeSuffixes {
			col := "3FG Scheme (" + suffix + ")"
			if !t.HasColumn(col) {
				continue
			}
			val := strings.TrimSpace(r.Get(col))
			if val == "" {
				continue
			}
			sd["3fg_scheme_"+strings.ToLower(suffix)] = val
		}
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []string:
		return strings.Join(s, ",")
	}
	return ""
}

// GatherShotLabels returns the full label set of a shot record: its
// Assisted/Non-Assisted flag, every non-empty subcategory value (split on
// comma), and every scheme tag. Leaderboard filtering and the player detail
// view both go through here so they can never disagree about a shot's tags.
func GatherShotLabels(sd ShotDetail) map[string]bool {
	labels := make(map[string]bool)
	if stringValue(sd["Assisted"]) != "" {
		labels["Assisted"] = true
	} else {
		labels["Non-Assisted"] = true
	}

	class := strings.ToLower(stringValue(sd["shot_class"]))
	var suffixes []string
	switch class {
	case "atr", "2fg":
		suffixes = twoPointSuffixes
	case "3fg":
		suffixes = threePointSuffixes
	}

	addValue := func(v any) {
		for _, part := range strings.Split(stringValue(v), ",") {
			if cleaned := strings.TrimSpace(part); cleaned != "" {
				labels[cleaned] = true
			}
		}
	}

	for _, suffix := range suffixes {
		if v, ok := sd[class+"_"+slugSuffix(suffix)]; ok {
			addValue(v)
		}
	}
	for _, scheme := range schemeSuffixes {
		if v, ok := sd[class+"_scheme_"+strings.ToLower(scheme)]; ok {
			addValue(v)
		}
	}
	return labels
}
