package dataprocessing

import (
	"strconv"
	"strings"
)

// Cell is a single table value: numeric, text, or missing.
type Cell struct {
	Text    string
	Num     float64
	Numeric bool
	Missing bool
}

// NumCell returns a numeric cell.
func NumCell(v float64) Cell {
	return Cell{Num: v, Numeric: true}
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// MissingCell returns a missing cell.
func MissingCell() Cell {
	return Cell{Missing: true}
}

// ParseCell converts a raw string field into a cell. Empty fields are
// missing; fields that parse as a float are numeric; everything else is text.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return MissingCell()
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return NumCell(v)
	}
	return TextCell(s)
}

// String renders the cell for CSV output. Missing cells render empty.
func (c Cell) String() string {
	switch {
	case c.Missing:
		return ""
	case c.Numeric:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return c.Text
	}
}

// Equal reports whether two cells hold the same value.
func (c Cell) Equal(o Cell) bool {
	if c.Missing || o.Missing {
		return c.Missing == o.Missing
	}
	if c.Numeric != o.Numeric {
		return false
	}
	if c.Numeric {
		return c.Num == o.Num
	}
	return c.Text == o.Text
}

// Table is an ordered set of columns and rows. Row order is stable: no stage
// reorders rows, so the cleaned output preserves input order.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// AddColumn appends a new column with every row set to fill.
func (t *Table) AddColumn(name string, fill Cell) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], fill)
	}
}

// NumericColumns returns the indexes of columns whose non-missing cells are
// all numeric (and that contain at least one numeric cell).
func (t *Table) NumericColumns() []int {
	var cols []int
	for i := range t.Columns {
		numeric := false
		ok := true
		for _, row := range t.Rows {
			c := row[i]
			if c.Missing {
				continue
			}
			if !c.Numeric {
				ok = false
				break
			}
			numeric = true
		}
		if ok && numeric {
			cols = append(cols, i)
		}
	}
	return cols
}

// fingerprint renders a row into a comparable key for duplicate detection.
func fingerprint(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Missing {
			b.WriteString("\x00?")
		} else {
			b.WriteString(c.String())
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}
