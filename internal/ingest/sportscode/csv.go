package sportscode

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Table is an in-memory event log: the header row plus every data row from
// one export. Cells are addressed by column name because exports routinely
// add, drop, and reorder the optional subcategory columns.
type Table struct {
	Columns []string
	rows    [][]string
	index   map[string]int
}

// Row is a single event line of the log.
type Row struct {
	table *Table
	cells []string
}

// playerColumnRe matches roster column headers such as "#12 John Doe".
var playerColumnRe = regexp.MustCompile(`^#\d+\s+\S+`)

// IsPlayerColumn reports whether a header names a player column. The "#"
// prefix is the contract that separates roster columns from metadata.
func IsPlayerColumn(name string) bool {
	return playerColumnRe.MatchString(name)
}

// ReadTable loads a CSV export from disk. Column headers are trimmed and any
// UTF-8 BOM is stripped so the "Row" column is recognized in files exported
// from Excel. A missing "Row" column is an immediate, descriptive error
// rather than a silent empty parse.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()
	return readTable(f)
}

func readTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tagging exports pad rows inconsistently

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	t := &Table{index: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		t.Columns = append(t.Columns, name)
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	if _, ok := t.index["Row"]; !ok {
		return nil, fmt.Errorf("csv is missing the required %q column", "Row")
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

// RequireColumns verifies that every named column exists.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("csv is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// PlayerColumns returns every roster ("#"-prefixed) column in header order.
func (t *Table) PlayerColumns() []string {
	var cols []string
	for _, c := range t.Columns {
		if IsPlayerColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th data row.
func (t *Table) Row(i int) Row { return Row{table: t, cells: t.rows[i]} }

// Get returns the raw cell under the named column, "" when the column is
// absent or the row is short.
func (r Row) Get(name string) string {
	i, ok := r.table.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// Type returns the trimmed row-type label from the "Row" column.
func (r Row) Type() string {
	return strings.TrimSpace(r.Get("Row"))
}

// Tokens splits the cell under the named column into event tokens.
func (r Row) Tokens(name string) []string {
	return SplitTokens(r.Get(name))
}

// Text joins every cell of the row into one string. Practice squad rows are
// scanned as a whole for scoring and event tokens, mirroring how the
// original spreadsheet formulas counted label occurrences row-wide.
func (r Row) Text() string {
	return strings.Join(r.cells, " ")
}
