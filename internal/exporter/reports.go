package exporter

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"agricli/internal/dataprocessing"
)

// ReportGenerator produces the batch aggregate reports consumed by chart
// tooling: top producing states per crop, production time series, and state
// yield comparisons. Columns are resolved through the permissive match chain;
// a crop column that cannot be resolved at all is treated as zero-filled
// rather than failing the report, and the substitution is logged.
type ReportGenerator struct {
	writer   *CSVWriter
	resolver *dataprocessing.ColumnResolver
	logger   *slog.Logger
}

// NewReportGenerator creates a report generator writing through the given
// CSV writer.
func NewReportGenerator(writer *CSVWriter, logger *slog.Logger) *ReportGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportGenerator{
		writer:   writer,
		resolver: dataprocessing.NewColumnResolver(logger),
		logger:   logger.With(slog.String("component", "report_generator")),
	}
}

// columnValues returns the numeric values of the resolved column, or a
// zero slice when the column cannot be resolved (the fallback-on-missing
// contract). Missing and text cells read as zero.
func (g *ReportGenerator) columnValues(t *dataprocessing.Table, want string) []float64 {
	values := make([]float64, len(t.Rows))

	key, ok := g.resolver.Resolve(t.Columns, want)
	if !ok {
		g.logger.Warn("column not found, substituting zero-filled values",
			slog.String("wanted", want))
		return values
	}

	idx, _ := t.ColumnIndex(key)
	for i, row := range t.Rows {
		if c := row[idx]; c.Numeric {
			values[i] = c.Num
		}
	}
	return values
}

// labelValues returns the text values of the resolved column ("" on miss).
func (g *ReportGenerator) labelValues(t *dataprocessing.Table, want string) []string {
	labels := make([]string, len(t.Rows))

	key, ok := g.resolver.Resolve(t.Columns, want)
	if !ok {
		g.logger.Warn("label column not found, substituting empty labels",
			slog.String("wanted", want))
		return labels
	}

	idx, _ := t.ColumnIndex(key)
	for i, row := range t.Rows {
		labels[i] = row[idx].String()
	}
	return labels
}

// TopProducingStates writes the top-n states by total production for the
// given crop production column.
func (g *ReportGenerator) TopProducingStates(t *dataprocessing.Table, path, productionColumn string, n int) error {
	states := g.labelValues(t, "state_name")
	production := g.columnValues(t, productionColumn)

	totals := make(map[string]float64)
	for i, state := range states {
		totals[state] += production[i]
	}

	type entry struct {
		state string
		total float64
	}
	entries := make([]entry, 0, len(totals))
	for state, total := range totals {
		entries = append(entries, entry{state, total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return entries[i].state < entries[j].state
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}

	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{e.state, formatFloat(e.total)}
	}

	return g.writer.WriteCSV(path, WriteOptions{
		Headers: []string{"state_name", "total_production_1000tons"},
		Records: records,
	})
}

// ProductionTimeSeries writes year-wise production totals for the given crop
// production columns, one column per crop, years ascending.
func (g *ReportGenerator) ProductionTimeSeries(t *dataprocessing.Table, path string, productionColumns []string) error {
	years := g.columnValues(t, "year")

	series := make([]map[int]float64, len(productionColumns))
	for i, col := range productionColumns {
		series[i] = make(map[int]float64)
		values := g.columnValues(t, col)
		for j, v := range values {
			series[i][int(years[j])] += v
		}
	}

	yearSet := make(map[int]struct{})
	for _, s := range series {
		for y := range s {
			yearSet[y] = struct{}{}
		}
	}
	var sorted []int
	for y := range yearSet {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	headers := append([]string{"year"}, productionColumns...)
	records := make([][]string, len(sorted))
	for i, y := range sorted {
		record := make([]string, len(headers))
		record[0] = strconv.Itoa(y)
		for j := range productionColumns {
			record[j+1] = formatFloat(series[j][y])
		}
		records[i] = record
	}

	return g.writer.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// StateYieldComparison writes per-state average yields for the given crop
// yield columns, states in alphabetical order.
func (g *ReportGenerator) StateYieldComparison(t *dataprocessing.Table, path string, yieldColumns []string) error {
	states := g.labelValues(t, "state_name")

	sums := make([]map[string]float64, len(yieldColumns))
	counts := make([]map[string]int, len(yieldColumns))
	for i, col := range yieldColumns {
		sums[i] = make(map[string]float64)
		counts[i] = make(map[string]int)
		values := g.columnValues(t, col)
		for j, v := range values {
			sums[i][states[j]] += v
			counts[i][states[j]]++
		}
	}

	stateSet := make(map[string]struct{})
	for _, s := range states {
		stateSet[s] = struct{}{}
	}
	var sorted []string
	for s := range stateSet {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)

	headers := append([]string{"state_name"}, yieldColumns...)
	records := make([][]string, len(sorted))
	for i, state := range sorted {
		record := make([]string, len(headers))
		record[0] = state
		for j := range yieldColumns {
			avg := 0.0
			if counts[j][state] > 0 {
				avg = sums[j][state] / float64(counts[j][state])
			}
			record[j+1] = formatFloat(avg)
		}
		records[i] = record
	}

	return g.writer.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
