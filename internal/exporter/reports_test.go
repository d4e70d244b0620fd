package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricli/internal/dataprocessing"
)

func reportTable() *dataprocessing.Table {
	t := dataprocessing.NewTable([]string{
		"year",
		"state_name",
		"rice_production_production_1000tons",
		"rice_yield_yield_kg_per_ha",
	})
	t.Rows = [][]dataprocessing.Cell{
		{dataprocessing.NumCell(2010), dataprocessing.TextCell("Punjab"), dataprocessing.NumCell(100), dataprocessing.NumCell(2000)},
		{dataprocessing.NumCell(2011), dataprocessing.TextCell("Punjab"), dataprocessing.NumCell(50), dataprocessing.NumCell(1000)},
		{dataprocessing.NumCell(2010), dataprocessing.TextCell("Kerala"), dataprocessing.NumCell(30), dataprocessing.NumCell(1500)},
		{dataprocessing.NumCell(2011), dataprocessing.TextCell("Kerala"), dataprocessing.NumCell(30), dataprocessing.NumCell(500)},
	}
	return t
}

func readReport(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestReportGenerator_TopProducingStates(t *testing.T) {
	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "top.csv")

	require.NoError(t, gen.TopProducingStates(reportTable(), path, "rice_production_production_1000tons", 10))

	records := readReport(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"state_name", "total_production_1000tons"}, records[0])
	assert.Equal(t, []string{"Punjab", "150.000"}, records[1])
	assert.Equal(t, []string{"Kerala", "60.000"}, records[2])
}

func TestReportGenerator_TopProducingStates_Limit(t *testing.T) {
	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "top.csv")

	require.NoError(t, gen.TopProducingStates(reportTable(), path, "rice_production_production_1000tons", 1))

	records := readReport(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "Punjab", records[1][0])
}

func TestReportGenerator_TopProducingStates_UnknownColumnFallsBackToZero(t *testing.T) {
	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "top.csv")

	require.NoError(t, gen.TopProducingStates(reportTable(), path, "jute_production_production_1000tons", 10))

	records := readReport(t, path)
	require.Len(t, records, 3)
	// Zero totals tie, alphabetical order breaks the tie
	assert.Equal(t, []string{"Kerala", "0.000"}, records[1])
	assert.Equal(t, []string{"Punjab", "0.000"}, records[2])
}

func TestReportGenerator_ProductionTimeSeries(t *testing.T) {
	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "series.csv")

	require.NoError(t, gen.ProductionTimeSeries(reportTable(), path, []string{"rice_production_production_1000tons"}))

	records := readReport(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"year", "rice_production_production_1000tons"}, records[0])
	assert.Equal(t, []string{"2010", "130.000"}, records[1])
	assert.Equal(t, []string{"2011", "80.000"}, records[2])
}

func TestReportGenerator_StateYieldComparison(t *testing.T) {
	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "yields.csv")

	require.NoError(t, gen.StateYieldComparison(reportTable(), path, []string{"rice_yield_yield_kg_per_ha"}))

	records := readReport(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"state_name", "rice_yield_yield_kg_per_ha"}, records[0])
	assert.Equal(t, []string{"Kerala", "1000.000"}, records[1])
	assert.Equal(t, []string{"Punjab", "1500.000"}, records[2])
}

func TestReportGenerator_ResolvesPlainColumnNames(t *testing.T) {
	// Reports requested with doubled canonical keys still work against tables
	// whose columns carry the plain form
	table := dataprocessing.NewTable([]string{"year", "state_name", "rice_production_1000tons"})
	table.Rows = [][]dataprocessing.Cell{
		{dataprocessing.NumCell(2010), dataprocessing.TextCell("Punjab"), dataprocessing.NumCell(10)},
	}

	gen := NewReportGenerator(NewCSVWriter(nil), nil)
	path := filepath.Join(t.TempDir(), "top.csv")

	require.NoError(t, gen.TopProducingStates(table, path, "rice_production_production_1000tons", 5))

	records := readReport(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Punjab", "10.000"}, records[1])
}
