package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricli/internal/dataprocessing"
)

func TestNewCSVWriter(t *testing.T) {
	writer := NewCSVWriter(nil)
	assert.NotNil(t, writer)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer := NewCSVWriter(nil)

	tests := []struct {
		name     string
		options  WriteOptions
		expected string
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"year", "state_name"},
				Records: [][]string{{"2010", "Punjab"}, {"2011", "Kerala"}},
			},
			expected: "year,state_name\n2010,Punjab\n2011,Kerala\n",
		},
		{
			name: "records without headers",
			options: WriteOptions{
				Records: [][]string{{"a", "b"}},
			},
			expected: "a,b\n",
		},
		{
			name: "empty records with headers",
			options: WriteOptions{
				Headers: []string{"year"},
			},
			expected: "year\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			require.NoError(t, writer.WriteCSV(path, tt.options))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestCSVWriter_WriteCSV_BOM(t *testing.T) {
	writer := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{
		Headers:   []string{"year"},
		Records:   [][]string{{"2010"}},
		BOMPrefix: true,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestCSVWriter_WriteCSV_CreatesParentDirectory(t *testing.T) {
	writer := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"a"}}))
	assert.FileExists(t, path)
}

func TestCSVWriter_WriteTable(t *testing.T) {
	table := dataprocessing.NewTable([]string{"year", "state_name", "rice_production_production_1000tons"})
	table.Rows = [][]dataprocessing.Cell{
		{dataprocessing.NumCell(2010), dataprocessing.TextCell("Punjab"), dataprocessing.NumCell(42.5)},
		{dataprocessing.NumCell(2011), dataprocessing.TextCell("Kerala"), dataprocessing.MissingCell()},
	}

	writer := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, writer.WriteTable(path, table))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, table.Columns, records[0])
	assert.Equal(t, []string{"2010", "Punjab", "42.5"}, records[1])
	assert.Equal(t, []string{"2011", "Kerala", ""}, records[2], "missing cells render empty")
}

func TestCSVWriter_WriteTable_RoundTrip(t *testing.T) {
	table := dataprocessing.NewTable([]string{"year", "rice_production_production_1000tons"})
	table.Rows = [][]dataprocessing.Cell{
		{dataprocessing.NumCell(2010), dataprocessing.NumCell(1.5)},
		{dataprocessing.NumCell(2011), dataprocessing.MissingCell()},
	}

	writer := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, writer.WriteTable(path, table))

	back, err := dataprocessing.ReadCSV(path)
	require.NoError(t, err)

	require.Equal(t, table.Columns, back.Columns)
	require.Len(t, back.Rows, len(table.Rows))
	for i := range table.Rows {
		for j := range table.Rows[i] {
			assert.True(t, table.Rows[i][j].Equal(back.Rows[i][j]),
				"cell (%d,%d) changed across write/read", i, j)
		}
	}
}

func TestCSVWriter_WriteCSV_FieldsWithCommas(t *testing.T) {
	writer := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{
		Headers: []string{"state_name"},
		Records: [][]string{{"Jammu, Kashmir"}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"Jammu, Kashmir"`))
}
