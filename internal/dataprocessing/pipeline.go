package dataprocessing

import (
	"log/slog"

	"agricli/internal/config"
	apperrors "agricli/internal/errors"
	"agricli/internal/infrastructure"
)

// Pipeline runs the full cleaning sequence over a raw table. Stages pass
// table values forward; the raw input table is never mutated.
type Pipeline struct {
	cfg    config.PipelineConfig
	logger *slog.Logger
}

// Result carries the cleaned table and per-stage statistics.
type Result struct {
	Table              *Table
	Collisions         []Collision
	SentinelsReplaced  int
	DuplicatesDropped  int
	CellsFilled        int
	Triples            []Triple
	YieldsRecalculated int
	NonCropMapped      map[string]string
}

// NewPipeline creates a cleaning pipeline.
func NewPipeline(cfg config.PipelineConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger.With(slog.String("component", "pipeline"))}
}

// Run cleans the raw table: normalize headers, resolve sentinels and
// duplicates, fill area/production columns, reconcile yields.
func (p *Pipeline) Run(raw *Table) (*Result, error) {
	if len(raw.Columns) == 0 {
		return nil, apperrors.NewAppValidationError("raw table has no columns")
	}

	table, collisions := p.normalize(raw)

	resolver := NewResolver(p.cfg.Sentinel, p.cfg.NonCropAreaColumns, p.logger)
	replaced := resolver.ReplaceSentinel(table)
	dropped := resolver.DropDuplicateRows(table)
	filled := resolver.FillAreaProduction(table)
	mapped := resolver.ResolveNonCropAreas(table)

	triples := MetricTriples(table.Columns)
	recalculated := ReconcileYields(table, triples, p.logger)

	infrastructure.RowsCleaned.Add(float64(len(table.Rows)))

	p.logger.Info("cleaning pipeline complete",
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Columns)),
		slog.Int("collisions", len(collisions)),
		slog.Int("sentinels_replaced", replaced),
		slog.Int("duplicates_dropped", dropped),
		slog.Int("triples", len(triples)),
		slog.Int("yields_recalculated", recalculated))

	return &Result{
		Table:              table,
		Collisions:         collisions,
		SentinelsReplaced:  replaced,
		DuplicatesDropped:  dropped,
		CellsFilled:        filled,
		Triples:            triples,
		YieldsRecalculated: recalculated,
		NonCropMapped:      mapped,
	}, nil
}

// normalize builds a new table with canonical column keys. When two raw
// headers normalize to the same key the first column wins; the duplicate
// column is dropped and the collision reported, never silently overwritten.
func (p *Pipeline) normalize(raw *Table) (*Table, []Collision) {
	keys, collisions := NormalizeColumns(raw.Columns)

	for _, c := range collisions {
		infrastructure.HeaderCollisions.Inc()
		p.logger.Warn("canonical key collision, keeping first column",
			slog.String("key", c.Key),
			slog.String("first_header", c.First),
			slog.String("duplicate_header", c.Duplicate))
	}

	var keep []int
	table := &Table{}
	for i, key := range keys {
		if key == "" {
			continue
		}
		keep = append(keep, i)
		table.Columns = append(table.Columns, key)
	}

	table.Rows = make([][]Cell, len(raw.Rows))
	for j, row := range raw.Rows {
		cells := make([]Cell, len(keep))
		for n, i := range keep {
			if i < len(row) {
				cells[n] = row[i]
			} else {
				cells[n] = MissingCell()
			}
		}
		table.Rows[j] = cells
	}
	return table, collisions
}
