package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "agricli/internal/errors"
)

// ReadTable loads a raw table from a CSV or XLSX file, dispatching on the
// file extension. A missing input file is fatal: the error is returned before
// any output is produced.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return ReadCSV(path)
	}
}

// ReadCSV loads a raw table from a CSV file. The first record is the header
// row; remaining records become rows in input order.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open input file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("input file %s has no header row", path), nil)
	}

	return tableFromRecords(records), nil
}

// ReadXLSX loads a raw table from an Excel workbook. The first sheet that
// carries more than a header row wins; sheets are tried in workbook order.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open input file", err)
	}
	defer f.Close()

	var records [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		records = rows
		sheetName = name
		break
	}
	if records == nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("no sheet with data found in %s", path), nil)
	}

	slog.Info("found data sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(records)))

	return tableFromRecords(records), nil
}

func tableFromRecords(records [][]string) *Table {
	table := NewTable(records[0])
	width := len(table.Columns)

	table.Rows = make([][]Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]Cell, width)
		for i := 0; i < width; i++ {
			if i < len(record) {
				row[i] = ParseCell(record[i])
			} else {
				row[i] = MissingCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
