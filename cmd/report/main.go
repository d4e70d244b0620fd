package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"agricli/internal/config"
	"agricli/internal/dataprocessing"
	"agricli/internal/exporter"
	"agricli/internal/infrastructure"
)

var productionColumns = []string{
	"rice_production_production_1000tons",
	"wheat_production_production_1000tons",
	"maize_production_production_1000tons",
}

var yieldColumns = []string{
	"rice_yield_yield_kg_per_ha",
	"wheat_yield_yield_kg_per_ha",
	"maize_yield_yield_kg_per_ha",
}

func main() {
	inPath := flag.String("in", "", "input cleaned CSV (defaults to data/cleaned/district_crop_data_cleaned.csv)")
	outDir := flag.String("outdir", "", "output directory for report CSVs (defaults to data/reports)")
	topN := flag.Int("top", 10, "number of states in the top-producers report")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Output:   "both",
				FilePath: paths.GetLogPath("report.log"),
			},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *inPath == "" {
		*inPath = paths.CleanedCSV
	}
	if *outDir == "" {
		*outDir = paths.ReportsDir
	}

	logger.Info("Starting report generation",
		slog.String("input", *inPath),
		slog.String("output_dir", *outDir))

	if !config.FileExists(*inPath) {
		logger.Error("Cleaned dataset not found, run the cleaner first",
			slog.String("path", *inPath))
		os.Exit(1)
	}

	table, err := dataprocessing.ReadTable(*inPath)
	if err != nil {
		logger.Error("Failed to read cleaned dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gen := exporter.NewReportGenerator(exporter.NewCSVWriter(logger), logger)
	reports := []struct {
		name string
		run  func(path string) error
	}{
		{"top_rice_producing_states.csv", func(path string) error {
			return gen.TopProducingStates(table, path, "rice_production_production_1000tons", *topN)
		}},
		{"production_time_series.csv", func(path string) error {
			return gen.ProductionTimeSeries(table, path, productionColumns)
		}},
		{"state_yield_comparison.csv", func(path string) error {
			return gen.StateYieldComparison(table, path, yieldColumns)
		}},
	}

	failed := 0
	for _, rep := range reports {
		path := filepath.Join(*outDir, rep.name)
		if err := rep.run(path); err != nil {
			logger.Error("Report failed",
				slog.String("report", rep.name),
				slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Info("Report written", slog.String("path", path))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
