package sportscode

import (
	"reflect"
	"strings"
	"testing"
)

func mustTable(t *testing.T, csv string) *Table {
	t.Helper()
	tbl, err := readTable(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("readTable() error = %v", err)
	}
	return tbl
}

func TestReadTableHeader(t *testing.T) {
	tbl := mustTable(t, "\ufeffRow, TEAM ,#12 John Doe\nOffense,ATR+,Assist\n")

	want := []string{"Row", "TEAM", "#12 John Doe"}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("Columns = %v, want %v", tbl.Columns, want)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestReadTableMissingRowColumn(t *testing.T) {
	_, err := readTable(strings.NewReader("TEAM,OPP STATS\nATR+,\n"))
	if err == nil {
		t.Fatal("readTable() error = nil, want missing-column error")
	}
	if !strings.Contains(err.Error(), `"Row"`) {
		t.Errorf("error = %q, want mention of the Row column", err)
	}
}

func TestReadTableRaggedRows(t *testing.T) {
	tbl := mustTable(t, "Row,TEAM,GAME SPLITS\nOffense\nDefense,Neutral,1st Half\n")

	if got := tbl.Row(0).Get("GAME SPLITS"); got != "" {
		t.Errorf("short row Get() = %q, want empty", got)
	}
	if got := tbl.Row(1).Get("GAME SPLITS"); got != "1st Half" {
		t.Errorf("Get(GAME SPLITS) = %q, want %q", got, "1st Half")
	}
	if got := tbl.Row(0).Get("NOPE"); got != "" {
		t.Errorf("absent column Get() = %q, want empty", got)
	}
}

func TestRowAccessors(t *testing.T) {
	tbl := mustTable(t, "Row,TEAM\n Offense ,\"2FG+; Assist\"\n")
	r := tbl.Row(0)

	if got := r.Type(); got != "Offense" {
		t.Errorf("Type() = %q, want %q", got, "Offense")
	}
	if got := r.Tokens("TEAM"); !reflect.DeepEqual(got, []string{"2FG+", "Assist"}) {
		t.Errorf("Tokens(TEAM) = %v, want [2FG+ Assist]", got)
	}
	if got := r.Text(); got != " Offense  2FG+; Assist" {
		t.Errorf("Text() = %q", got)
	}
}

func TestPlayerColumns(t *testing.T) {
	tbl := mustTable(t, "Row,#4 Smith,TEAM,# of screens,#23 Jones\nOffense,,,,\n")

	want := []string{"#4 Smith", "#23 Jones"}
	if got := tbl.PlayerColumns(); !reflect.DeepEqual(got, want) {
		t.Errorf("PlayerColumns() = %v, want %v", got, want)
	}
}

func TestIsPlayerColumn(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"#12 John Doe", true},
		{"#4 Smith", true},
		{"# Smith", false},
		{"#12", false},
		{"TEAM", false},
	}

	for _, tt := range tests {
		if got := IsPlayerColumn(tt.name); got != tt.want {
			t.Errorf("IsPlayerColumn(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRequireColumns(t *testing.T) {
	tbl := mustTable(t, "Row,TEAM\nOffense,\n")

	if err := tbl.RequireColumns("Row", "TEAM"); err != nil {
		t.Errorf("RequireColumns() error = %v, want nil", err)
	}

	err := tbl.RequireColumns("TEAM", "OPP STATS", "SHOT CLOCK")
	if err == nil {
		t.Fatal("RequireColumns() error = nil, want missing-column error")
	}
	if !strings.Contains(err.Error(), "OPP STATS, SHOT CLOCK") {
		t.Errorf("error = %q, want both missing columns listed", err)
	}

	if tbl.HasColumn("TEAM") != true || tbl.HasColumn("OPP STATS") != false {
		t.Error("HasColumn() disagrees with RequireColumns()")
	}
}
