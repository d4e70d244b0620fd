package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Cell
	}{
		{"empty is missing", "", MissingCell()},
		{"whitespace only is missing", "   ", MissingCell()},
		{"integer", "42", NumCell(42)},
		{"float", "3.25", NumCell(3.25)},
		{"negative", "-1", NumCell(-1)},
		{"thousands separator stripped", "1,234.5", NumCell(1234.5)},
		{"text", "Punjab", TextCell("Punjab")},
		{"trimmed text", "  Punjab  ", TextCell("Punjab")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCell(tt.raw))
		})
	}
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "", MissingCell().String())
	assert.Equal(t, "42", NumCell(42).String())
	assert.Equal(t, "3.25", NumCell(3.25).String())
	assert.Equal(t, "Punjab", TextCell("Punjab").String())
}

func TestCell_Equal(t *testing.T) {
	assert.True(t, NumCell(1).Equal(NumCell(1)))
	assert.False(t, NumCell(1).Equal(NumCell(2)))
	assert.True(t, MissingCell().Equal(MissingCell()))
	assert.False(t, MissingCell().Equal(TextCell("")))
	assert.False(t, NumCell(1).Equal(TextCell("1")))
}

func TestTable_AddColumn(t *testing.T) {
	table := newTestTable(
		[]string{"year"},
		[]Cell{NumCell(2010)},
		[]Cell{NumCell(2011)},
	)

	table.AddColumn("fruits_area_area_1000ha", NumCell(0))

	assert.Equal(t, []string{"year", "fruits_area_area_1000ha"}, table.Columns)
	for _, row := range table.Rows {
		assert.Len(t, row, 2)
		assert.Equal(t, NumCell(0), row[1])
	}
}

func TestTable_NumericColumns(t *testing.T) {
	table := newTestTable(
		[]string{"year", "state_name", "mixed", "all_missing"},
		[]Cell{NumCell(2010), TextCell("Punjab"), NumCell(1), MissingCell()},
		[]Cell{NumCell(2011), TextCell("Kerala"), TextCell("n/a"), MissingCell()},
	)

	assert.Equal(t, []int{0}, table.NumericColumns())
}

func TestTable_ColumnIndex(t *testing.T) {
	table := NewTable([]string{"year", "state_name"})

	idx, ok := table.ColumnIndex("state_name")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = table.ColumnIndex("missing")
	assert.False(t, ok)
}
