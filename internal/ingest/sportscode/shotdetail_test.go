package sportscode

import (
	"reflect"
	"testing"
)

func TestNewShotDetail(t *testing.T) {
	sd := NewShotDetail("3fg", "made", " Transition ", "Corner", true)

	if sd["shot_class"] != "3fg" || sd["result"] != "made" {
		t.Errorf("core keys = %v / %v", sd["shot_class"], sd["result"])
	}
	if sd["possession_type"] != "Transition" {
		t.Errorf("possession_type = %q, want trimmed %q", sd["possession_type"], "Transition")
	}
	if sd["shot_location"] != "Corner" {
		t.Errorf("shot_location = %q", sd["shot_location"])
	}
	if sd["Assisted"] != "Assisted" || sd["Non-Assisted"] != "" {
		t.Errorf("assisted flags = %q / %q, want Assisted set", sd["Assisted"], sd["Non-Assisted"])
	}

	sd = NewShotDetail("atr", "miss", "Half Court", "", false)
	if sd["Assisted"] != "" || sd["Non-Assisted"] != "Non-Assisted" {
		t.Errorf("assisted flags = %q / %q, want Non-Assisted set", sd["Assisted"], sd["Non-Assisted"])
	}
}

func TestCaptureSubcategoriesATRDualPrefix(t *testing.T) {
	tbl := mustTable(t,
		"Row,2FG (Type),2FG (Feet),2FG Scheme (Drive),2FG Scheme (Pass)\n"+
			"Offense,Drive Right,Set,Middle,\n")
	r := tbl.Row(0)

	sd := NewShotDetail("atr", "made", "", "", false)
	CaptureSubcategories(sd, tbl, r, "atr")

	if sd["2fg_type"] != "Drive Right" || sd["atr_type"] != "Drive Right" {
		t.Errorf("type keys = %v / %v, want both prefixes", sd["2fg_type"], sd["atr_type"])
	}
	if sd["2fg_feet"] != "Set" || sd["atr_feet"] != "Set" {
		t.Errorf("feet keys = %v / %v, want both prefixes", sd["2fg_feet"], sd["atr_feet"])
	}
	if sd["2fg_scheme_drive"] != "Middle" || sd["atr_scheme_drive"] != "Middle" {
		t.Errorf("scheme keys = %v / %v, want both prefixes", sd["2fg_scheme_drive"], sd["atr_scheme_drive"])
	}
	// Empty scheme cells are dropped, empty subcategory cells are kept.
	if _, ok := sd["2fg_scheme_pass"]; ok {
		t.Error("empty scheme cell should not be recorded")
	}
}

func TestCaptureSubcategories2FGSinglePrefix(t *testing.T) {
	tbl := mustTable(t, "Row,2FG (Type)\nOffense,Post Up\n")
	sd := NewShotDetail("2fg", "miss", "", "", false)
	CaptureSubcategories(sd, tbl, tbl.Row(0), "2fg")

	if sd["2fg_type"] != "Post Up" {
		t.Errorf("2fg_type = %v, want Post Up", sd["2fg_type"])
	}
	if _, ok := sd["atr_type"]; ok {
		t.Error("2fg shots must not carry atr_ keys")
	}
}

func TestCaptureSubcategories3FG(t *testing.T) {
	tbl := mustTable(t,
		"Row,3FG (Good/Bad),3FG (Contest),3FG Scheme (Attack)\n"+
			"Offense,Good,Late,Pistol\n")
	sd := NewShotDetail("3fg", "made", "", "", true)
	CaptureSubcategories(sd, tbl, tbl.Row(0), "3fg")

	if sd["3fg_good_bad"] != "Good" {
		t.Errorf("3fg_good_bad = %v, want Good", sd["3fg_good_bad"])
	}
	if sd["3fg_contest"] != "Late" {
		t.Errorf("3fg_contest = %v, want Late", sd["3fg_contest"])
	}
	if sd["3fg_scheme_attack"] != "Pistol" {
		t.Errorf("3fg_scheme_attack = %v, want Pistol", sd["3fg_scheme_attack"])
	}
}

func TestGatherShotLabels(t *testing.T) {
	sd := ShotDetail{
		"shot_class":      "3fg",
		"Assisted":        "Assisted",
		"Non-Assisted":    "",
		"3fg_type":        "Catch and Shoot, Movement",
		"3fg_contest":     "",
		"3fg_scheme_pass": "Skip",
	}

	got := GatherShotLabels(sd)
	want := map[string]bool{
		"Assisted":        true,
		"Catch and Shoot": true,
		"Movement":        true,
		"Skip":            true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GatherShotLabels() = %v, want %v", got, want)
	}
}

func TestGatherShotLabelsNonAssisted(t *testing.T) {
	sd := ShotDetail{"shot_class": "2fg", "Assisted": "", "Non-Assisted": "Non-Assisted"}

	got := GatherShotLabels(sd)
	if !got["Non-Assisted"] || got["Assisted"] {
		t.Errorf("GatherShotLabels() = %v, want only Non-Assisted flag", got)
	}
}
