package dataprocessing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "agricli/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "Year,State Name,Rice Production (1000 tons)\n2010,Punjab,42.5\n2011,Kerala,\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "State Name", "Rice Production (1000 tons)"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, NumCell(2010), table.Rows[0][0])
	assert.Equal(t, TextCell("Punjab"), table.Rows[0][1])
	assert.Equal(t, NumCell(42.5), table.Rows[0][2])
	assert.True(t, table.Rows[1][2].Missing)
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	require.Len(t, table.Rows[0], 3)
	assert.True(t, table.Rows[0][2].Missing)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.True(t, errors.Is(err, os.ErrNotExist), "cause stays reachable through the wrap chain")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadTable_DispatchesOnExtension(t *testing.T) {
	path := writeTempCSV(t, "a\n1\n")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, table.Columns)

	_, err = ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
