package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"onscli/internal/config"
	"onscli/internal/exporter"
	"onscli/internal/files"
	"onscli/internal/infrastructure"
	"onscli/internal/panel"
	"onscli/internal/snapshot"
	"onscli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory for snapshot files (defaults to data/raw relative to executable)")
	outFile := flag.String("out", "", "output CSV file path (defaults to data/processed/<series>_tidy.csv)")
	series := flag.String("series", "", "series code (defaults to configured value)")
	flag.Parse()

	// Initialize paths first to get default directories
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
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("tidybuilder.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// Use centralized directories and configured series as defaults
	if *series == "" {
		*series = cfg.Series.Code
	}
	if *inDir == "" {
		*inDir = paths.RawDir
	}
	if *outFile == "" {
		*outFile = paths.GetProcessedPath(fmt.Sprintf("%s_tidy.csv", *series))
	}

	logger.Info("Starting vintage panel build",
		slog.String("series", *series),
		slog.String("input_dir", *inDir),
		slog.String("output_file", *outFile),
		slog.String("executable_dir", paths.ExecutableDir))

	if err := run(logger, *inDir, *outFile); err != nil {
		logger.Error("Run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run performs one complete build: discover snapshots, parse each, assemble
// the panel, and write the output. The output file is only touched after a
// fully successful assembly, so a failed run never corrupts the previous one.
func run(logger *slog.Logger, inDir, outFile string) error {
	discovery := files.NewDiscovery(inDir)
	snapshots, undated, err := discovery.FindSnapshotFiles(".")
	if err != nil {
		return fmt.Errorf("failed to discover snapshots: %w", err)
	}

	for _, name := range undated {
		logger.Warn("Skipping snapshot",
			slog.String("filename", name),
			slog.String("reason", "vintage date missing from filename"))
	}

	logger.Info("Snapshot files discovered", slog.Int("count", len(snapshots)))
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshot files found in %s", inDir)
	}

	var allSeries []domain.VintageSeries
	for i, file := range snapshots {
		logger.Info("Parsing snapshot",
			slog.Int("current", i+1),
			slog.Int("total", len(snapshots)),
			slog.String("filename", file.Name))

		series, err := snapshot.ParseFile(file.Path, file.VintageDate)
		if err != nil {
			level := slog.LevelWarn
			if !isDiscard(err) {
				level = slog.LevelError
			}
			logger.Log(context.Background(), level, "Skipping snapshot",
				slog.String("filename", file.Name),
				slog.String("reason", err.Error()))
			continue
		}

		logger.Info("Snapshot accepted",
			slog.String("filename", file.Name),
			slog.String("vintage", file.VintageDate.Format("2006-01-02")),
			slog.Int("rows", len(series.Observations)))

		allSeries = append(allSeries, *series)
	}

	if len(allSeries) == 0 {
		return errors.New("no snapshots survived parsing")
	}

	assembler := panel.NewAssembler()
	result, stats, err := assembler.AssembleWithStats(allSeries)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	logger.Info("Panel assembled",
		slog.Int("total_cells", stats.TotalCells),
		slog.Int("observed_cells", stats.ObservedCells),
		slog.Int("forward_filled_cells", stats.FilledCells),
		slog.Int("months", stats.MonthsSpanned),
		slog.Int("vintages", stats.VintagesSpanned))

	paths, err := config.GetPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}

	writer := exporter.NewCSVWriter(paths)
	panelExporter := exporter.NewPanelExporter(writer)
	if err := panelExporter.ExportPanel(result, outFile); err != nil {
		return fmt.Errorf("failed to write panel: %w", err)
	}

	logger.Info("Build complete",
		slog.Int("rows", stats.TotalCells),
		slog.String("output_file", outFile))

	return nil
}

// isDiscard reports whether err is one of the expected per-snapshot discard
// reasons rather than an unexpected failure.
func isDiscard(err error) bool {
	return errors.Is(err, snapshot.ErrUnexpectedShape) ||
		errors.Is(err, snapshot.ErrNoNumericColumn) ||
		errors.Is(err, snapshot.ErrNoMonthLabels)
}
