package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricli/internal/config"
)

func pipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		Sentinel:           -1,
		NonCropAreaColumns: []string{"fruits_area_area_1000ha"},
	}
}

func TestPipeline_Run(t *testing.T) {
	raw := newTestTable(
		[]string{
			"Year",
			"State Name",
			"Rice Area (1000 ha)",
			"Rice Production (1000 tons)",
			"Rice Yield (Kg per ha)",
			"Fruits Area (1000 ha)",
		},
		[]Cell{NumCell(2010), TextCell("Punjab"), NumCell(50), NumCell(100), MissingCell(), NumCell(3)},
		[]Cell{NumCell(2010), TextCell("Punjab"), NumCell(50), NumCell(100), MissingCell(), NumCell(3)},
		[]Cell{NumCell(2011), TextCell("Punjab"), NumCell(-1), NumCell(-1), MissingCell(), MissingCell()},
		[]Cell{NumCell(2012), TextCell("Kerala"), NumCell(10), NumCell(5), NumCell(777), NumCell(1)},
	)

	p := NewPipeline(pipelineConfig(), nil)
	result, err := p.Run(raw)
	require.NoError(t, err)

	table := result.Table
	assert.Equal(t, []string{
		"year",
		"state_name",
		"rice_area_area_1000ha",
		"rice_production_production_1000tons",
		"rice_yield_yield_kg_per_ha",
		"fruits_area_area_1000ha",
	}, table.Columns)

	// Exact duplicate dropped, first kept
	require.Len(t, table.Rows, 3)
	assert.Equal(t, 1, result.DuplicatesDropped)

	// Sentinels became missing and then zero through the area/production fill
	assert.Equal(t, 2, result.SentinelsReplaced)
	assert.Equal(t, NumCell(0), table.Rows[1][2])
	assert.Equal(t, NumCell(0), table.Rows[1][3])

	// Missing yield derived: 100 / 50 * 1000
	assert.Equal(t, NumCell(2000), table.Rows[0][4])
	// Zero area forces zero yield
	assert.Equal(t, NumCell(0), table.Rows[1][4])
	// Present yield untouched even though 5/10*1000 != 777
	assert.Equal(t, NumCell(777), table.Rows[2][4])
	assert.Equal(t, 2, result.YieldsRecalculated)

	// Non-crop area fill applied
	assert.Equal(t, NumCell(0), table.Rows[1][5])

	require.Len(t, result.Triples, 1)
	assert.Empty(t, result.Collisions)
}

func TestPipeline_Run_HeaderCollision(t *testing.T) {
	raw := newTestTable(
		[]string{"Year", "State Name", "state name"},
		[]Cell{NumCell(2010), TextCell("Punjab"), TextCell("PUNJAB")},
	)

	p := NewPipeline(pipelineConfig(), nil)
	result, err := p.Run(raw)
	require.NoError(t, err)

	require.Len(t, result.Collisions, 1)
	assert.Equal(t, "state_name", result.Collisions[0].Key)

	// First column keeps the key, duplicate column dropped entirely
	idx, ok := result.Table.ColumnIndex("state_name")
	require.True(t, ok)
	assert.Equal(t, TextCell("Punjab"), result.Table.Rows[0][idx])
	assert.NotContains(t, result.Table.Columns, "")
}

func TestPipeline_Run_CreatesMissingNonCropColumn(t *testing.T) {
	raw := newTestTable(
		[]string{"Year", "State Name"},
		[]Cell{NumCell(2010), TextCell("Punjab")},
	)

	p := NewPipeline(pipelineConfig(), nil)
	result, err := p.Run(raw)
	require.NoError(t, err)

	idx, ok := result.Table.ColumnIndex("fruits_area_area_1000ha")
	require.True(t, ok)
	assert.Equal(t, NumCell(0), result.Table.Rows[0][idx])
}

func TestPipeline_Run_EmptyColumns(t *testing.T) {
	p := NewPipeline(pipelineConfig(), nil)
	_, err := p.Run(&Table{})
	assert.Error(t, err)
}

func TestPipeline_Run_PreservesRowOrder(t *testing.T) {
	raw := newTestTable(
		[]string{"Year"},
		[]Cell{NumCell(2012)},
		[]Cell{NumCell(2010)},
		[]Cell{NumCell(2011)},
	)

	p := NewPipeline(pipelineConfig(), nil)
	result, err := p.Run(raw)
	require.NoError(t, err)

	years := []float64{}
	for _, row := range result.Table.Rows {
		years = append(years, row[0].Num)
	}
	assert.Equal(t, []float64{2012, 2010, 2011}, years)
}
