package dataprocessing

import (
	"log/slog"
	"strings"

	"agricli/internal/infrastructure"
)

// Resolver replaces sentinel values with missing, removes duplicate rows and
// fills area/production columns. Yield columns are deliberately excluded from
// the blanket zero fill: yield is a ratio and is recomputed by the
// reconciler when derivable.
type Resolver struct {
	Sentinel           float64
	NonCropAreaColumns []string

	logger *slog.Logger
}

// NewResolver creates a resolver with the given sentinel value and non-crop
// area column list.
func NewResolver(sentinel float64, nonCropAreaColumns []string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		Sentinel:           sentinel,
		NonCropAreaColumns: nonCropAreaColumns,
		logger:             logger.With(slog.String("component", "resolver")),
	}
}

// ReplaceSentinel turns every numeric cell equal to the sentinel into a
// missing cell, across all numeric columns. This runs before any fill rule so
// the sentinel is never treated as a literal value.
func (r *Resolver) ReplaceSentinel(t *Table) int {
	replaced := 0
	for _, col := range t.NumericColumns() {
		for i := range t.Rows {
			c := t.Rows[i][col]
			if c.Numeric && c.Num == r.Sentinel {
				t.Rows[i][col] = MissingCell()
				replaced++
			}
		}
	}
	if replaced > 0 {
		r.logger.Info("replaced sentinel values",
			slog.Float64("sentinel", r.Sentinel),
			slog.Int("count", replaced))
	}
	return replaced
}

// DropDuplicateRows removes rows whose cells all equal an earlier row,
// keeping the first occurrence. Row order is otherwise preserved.
func (r *Resolver) DropDuplicateRows(t *Table) int {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	dropped := 0
	for _, row := range t.Rows {
		fp := fingerprint(row)
		if _, dup := seen[fp]; dup {
			dropped++
			continue
		}
		seen[fp] = struct{}{}
		kept = append(kept, row)
	}
	t.Rows = kept
	if dropped > 0 {
		r.logger.Info("dropped duplicate rows", slog.Int("count", dropped))
	}
	return dropped
}

// FillAreaProduction replaces missing values with zero in every column
// classified as area or production by canonical-key substring. Absence of
// area/production is modeled as "none cultivated/produced", not "unknown".
func (r *Resolver) FillAreaProduction(t *Table) int {
	filled := 0
	for i, key := range t.Columns {
		if !IsAreaColumn(key) && !IsProductionColumn(key) {
			continue
		}
		for j := range t.Rows {
			if t.Rows[j][i].Missing {
				t.Rows[j][i] = NumCell(0)
				filled++
			}
		}
	}
	return filled
}

// ResolveNonCropAreas makes sure every configured non-crop area column exists
// and is zero-filled. For each expected column the chain tries, in order:
//
//	(a) exact name match
//	(b) repeated-segment collapse (e.g. "area_area" -> "area")
//	(c) substring search among existing area columns
//	(d) creation of the column filled with zero
//
// The order is load-bearing: earlier matches are preferred and the chain has
// an observable side effect (a new zero-filled column) when nothing matches.
// Every non-exact resolution is logged for traceability. The returned map
// records expected name -> resolved name for the non-exact cases.
func (r *Resolver) ResolveNonCropAreas(t *Table) map[string]string {
	mapped := make(map[string]string)
	var resolved []string

	for _, want := range r.NonCropAreaColumns {
		if _, ok := t.ColumnIndex(want); ok {
			resolved = append(resolved, want)
			continue
		}

		if candidate := collapseRepeatedSegment(want); candidate != want {
			if _, ok := t.ColumnIndex(candidate); ok {
				mapped[want] = candidate
				resolved = append(resolved, candidate)
				r.logger.Warn("non-crop area column resolved by segment collapse",
					slog.String("expected", want),
					slog.String("resolved", candidate))
				continue
			}
		}

		if found, ok := searchAreaColumn(t.Columns, want); ok {
			mapped[want] = found
			resolved = append(resolved, found)
			r.logger.Warn("non-crop area column resolved by substring search",
				slog.String("expected", want),
				slog.String("resolved", found))
			continue
		}

		t.AddColumn(want, NumCell(0))
		resolved = append(resolved, want)
		infrastructure.SyntheticColumns.Inc()
		r.logger.Warn("non-crop area column not found, created zero-filled column",
			slog.String("column", want))
	}

	// Zero-fill the resolved set; columns matched in (b) or (c) may still
	// carry missing cells not covered by the crop-column fill.
	for _, key := range resolved {
		if i, ok := t.ColumnIndex(key); ok {
			for j := range t.Rows {
				if t.Rows[j][i].Missing {
					t.Rows[j][i] = NumCell(0)
				}
			}
		}
	}

	return mapped
}

// collapseRepeatedSegment fixes a duplicated unit token in a canonical key,
// e.g. "fruits_area_area_1000ha" -> "fruits_area_1000ha".
func collapseRepeatedSegment(key string) string {
	return strings.Replace(key, "area_area", "area", 1)
}

// searchAreaColumn finds the first existing area column containing the
// expected key's prefix (the part before the first "_area").
func searchAreaColumn(columns []string, want string) (string, bool) {
	prefix := want
	if i := strings.Index(want, "_area"); i >= 0 {
		prefix = want[:i]
	}
	for _, col := range columns {
		if strings.Contains(col, prefix) && IsAreaColumn(col) {
			return col, true
		}
	}
	return "", false
}
