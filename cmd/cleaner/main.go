package main

import (
	"flag"
	"log/slog"
	"os"

	"agricli/internal/config"
	"agricli/internal/dataprocessing"
	"agricli/internal/exporter"
	"agricli/internal/infrastructure"
)

func main() {
	inPath := flag.String("in", "", "input raw dataset (.csv or .xlsx, defaults to data/raw/ICRISAT_District_Level_Data.csv)")
	outPath := flag.String("out", "", "output cleaned CSV (defaults to data/cleaned/district_crop_data_cleaned.csv)")
	sentinel := flag.Float64("sentinel", 0, "override the missing-data sentinel value")
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
				FilePath: paths.GetLogPath("cleaner.log"),
			},
		}
		cfg.Pipeline.Sentinel = -1
		cfg.Pipeline.NonCropAreaColumns = config.DefaultNonCropAreaColumns
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	applySentinelOverride(&cfg.Pipeline, isFlagSet("sentinel"), *sentinel, logger)

	if *inPath == "" {
		*inPath = paths.GetRawPath("ICRISAT_District_Level_Data.csv")
	}
	if *outPath == "" {
		*outPath = paths.CleanedCSV
	}

	logger.Info("Starting dataset cleaning",
		slog.String("input", *inPath),
		slog.String("output", *outPath),
		slog.Float64("sentinel", cfg.Pipeline.Sentinel))

	if !config.FileExists(*inPath) {
		logger.Error("Input file not found", slog.String("path", *inPath))
		os.Exit(1)
	}

	raw, err := dataprocessing.ReadTable(*inPath)
	if err != nil {
		logger.Error("Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := dataprocessing.NewPipeline(cfg.Pipeline, logger)
	result, err := pipeline.Run(raw)
	if err != nil {
		logger.Error("Cleaning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteTable(*outPath, result.Table); err != nil {
		logger.Error("Failed to write cleaned CSV", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Cleaning complete",
		slog.Int("rows", len(result.Table.Rows)),
		slog.Int("columns", len(result.Table.Columns)),
		slog.Int("header_collisions", len(result.Collisions)),
		slog.Int("sentinels_replaced", result.SentinelsReplaced),
		slog.Int("duplicates_dropped", result.DuplicatesDropped),
		slog.Int("cells_filled", result.CellsFilled),
		slog.Int("yield_triples", len(result.Triples)),
		slog.Int("yields_recalculated", result.YieldsRecalculated),
		slog.String("output", *outPath))
}

// applySentinelOverride applies an explicit -sentinel flag to the pipeline
// config. Zero is a legitimate data value and never a sentinel, so a zero
// override is ignored.
func applySentinelOverride(cfg *config.PipelineConfig, set bool, value float64, logger *slog.Logger) {
	if !set {
		return
	}
	if value == 0 {
		logger.Warn("Ignoring zero sentinel override, zero is a data value")
		return
	}
	cfg.Sentinel = value
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
