package dataprocessing

import (
	"log/slog"
	"strings"
)

// Triple links a yield column to the production and area columns of the same
// crop. Triples exist only when all three columns are present.
type Triple struct {
	Yield      string
	Production string
	Area       string
}

// MetricTriples discovers all valid (yield, production, area) triples in the
// canonical column set. The crop base is the yield key minus the unit suffix
// and the header's own trailing metric word, so "rice_yield_yield_kg_per_ha"
// pairs with "rice_production_production_1000tons" and
// "rice_area_area_1000ha"; plain single-token keys are accepted as well.
func MetricTriples(columns []string) []Triple {
	index := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		index[c] = struct{}{}
	}

	exists := func(candidates ...string) (string, bool) {
		for _, c := range candidates {
			if _, ok := index[c]; ok {
				return c, true
			}
		}
		return "", false
	}

	var triples []Triple
	for _, col := range columns {
		if !strings.HasSuffix(col, YieldSuffix) {
			continue
		}
		base := strings.TrimSuffix(col, YieldSuffix)
		base = strings.TrimSuffix(base, "_yield")

		production, ok := exists(base+"_production"+ProductionSuffix, base+ProductionSuffix)
		if !ok {
			continue
		}
		area, ok := exists(base+"_area"+AreaSuffix, base+AreaSuffix)
		if !ok {
			continue
		}
		triples = append(triples, Triple{Yield: col, Production: production, Area: area})
	}
	return triples
}

// ReconcileYields recomputes missing yield values row by row for every
// triple:
//
//	yield missing, area != 0:  yield = production / area * 1000
//	yield missing, area == 0:  yield = 0
//
// The multiplication converts 1000-tons-per-1000-ha to kg-per-ha. The
// zero-area branch is a modeling choice (zero yield, not indeterminate) and
// structurally avoids division by zero. Present yields are never overwritten,
// even when inconsistent with production and area; no consistency check is
// performed.
func ReconcileYields(t *Table, triples []Triple, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}
	recalculated := 0

	for _, tr := range triples {
		yi, ok := t.ColumnIndex(tr.Yield)
		if !ok {
			continue
		}
		pi, ok := t.ColumnIndex(tr.Production)
		if !ok {
			continue
		}
		ai, ok := t.ColumnIndex(tr.Area)
		if !ok {
			continue
		}

		for j := range t.Rows {
			if !t.Rows[j][yi].Missing {
				continue
			}
			area := t.Rows[j][ai]
			production := t.Rows[j][pi]
			if !area.Numeric || !production.Numeric {
				continue
			}
			if area.Num != 0 {
				t.Rows[j][yi] = NumCell(production.Num / area.Num * 1000)
			} else {
				t.Rows[j][yi] = NumCell(0)
			}
			recalculated++
		}
	}

	if recalculated > 0 {
		logger.Info("reconciled missing yields",
			slog.Int("triples", len(triples)),
			slog.Int("recalculated", recalculated))
	}
	return recalculated
}
