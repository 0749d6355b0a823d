// Package main provides the one-shot accident report: it reads the accident and
// vehicle tables, enriches them, draws the exploratory charts and exports the BI tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"roadsafety/internal/aggregator"
	"roadsafety/internal/chart"
	"roadsafety/internal/config"
	"roadsafety/internal/formatter"
	"roadsafety/internal/logger"
	"roadsafety/internal/metrics"
	"roadsafety/internal/models"
	"roadsafety/internal/normalizer"
	"roadsafety/internal/sink"
	"roadsafety/internal/source"
)

// options are the command-line overrides.
type options struct {
	configPath string
	accidents  string
	vehicles   string
	outDir     string
	noCharts   bool
	workDir    string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "", "Path to YAML config (default configs/report.yaml if present)")
	flag.StringVar(&opts.accidents, "accidents", "", "Accident table (CSV)")
	flag.StringVar(&opts.vehicles, "vehicles", "", "Vehicle table (CSV)")
	flag.StringVar(&opts.outDir, "out", "", "Directory for the BI tables")
	flag.BoolVar(&opts.noCharts, "no-charts", false, "Skip the console charts")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "report failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	startTime := time.Now()

	cfg, err := config.Load(opts.configPath, opts.workDir)
	if err != nil {
		return err
	}

	applyFlags(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format, stderr)
	log.Info("Starting accident report", "accidents", cfg.Input.Accidents, "vehicles", cfg.Input.Vehicles)

	// 1. Ingestion
	// ------------
	reader := source.NewReader()

	accidents, err := reader.ReadFile(cfg.Input.Accidents, source.AccidentColumns)
	if err != nil {
		return fmt.Errorf("failed to load accidents: %w", err)
	}

	vehicles, err := reader.ReadFile(cfg.Input.Vehicles, source.VehicleColumns)
	if err != nil {
		return fmt.Errorf("failed to load vehicles: %w", err)
	}

	log.Info("Loaded sources", "accident_rows", len(accidents.Rows), "vehicle_rows", len(vehicles.Rows))

	// 2. Processing
	// -------------
	processor := normalizer.NewProcessor(log.With("phase", "process"), cfg.Input.DateLayouts)

	result, err := processor.Process(accidents.Rows, vehicles.Rows)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	// 3. Charts
	// ---------
	if cfg.Charts.Enabled {
		renderer := chart.NewRenderer(stdout, cfg.Charts.Width, cfg.Charts.Height)
		for _, spec := range []chart.Spec{chart.SeveritySpec(), chart.TimeBucketSpec()} {
			if err := renderer.Render(spec, result.Accidents); err != nil {
				return fmt.Errorf("failed to render %q: %w", spec.Title, err)
			}
		}
	}

	// 4. Aggregation
	// --------------
	agg := aggregator.NewAggregator(cfg.Aggregation.CoordinatePrecision)
	locations := agg.Location(result.Accidents)
	tables := []models.Table{
		models.LocationTable(locations),
		models.TimeTable(agg.Time(result.Accidents)),
		models.VehicleTable(agg.Vehicle(result.Accidents)),
	}

	summary := aggregator.Summarize(result.Accidents, locations)
	log.Info("Aggregated accidents",
		"accidents", summary.Accidents,
		"locations", summary.Locations,
		"mean_vehicles", summary.MeanVehicles,
		"stddev_vehicles", summary.StdDevVehicles,
		"mean_severity_score", summary.MeanSeverityScore,
		"max_severity_score", summary.MaxSeverityScore,
	)

	// 5. Export
	// ---------
	csvSink := sink.NewCSVSink(cfg.Output.Dir, cfg.OutputFiles())
	if err := sink.WriteAll(tables, csvSink); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if cfg.Output.SQLitePath != "" {
		if err := exportSQLite(ctx, cfg.Output.SQLitePath, tables); err != nil {
			return err
		}

		log.Info("Exported SQLite tables", "path", cfg.Output.SQLitePath)
	}

	if cfg.Output.PreviewRows > 0 {
		for _, t := range tables {
			fmt.Fprintf(stdout, "%s\n%s\n\n", t.Name, formatter.FormatTable(t, cfg.Output.PreviewRows))
		}
	}

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveInput(result.Read, result.Dropped, len(result.Accidents), len(result.Vehicles))

		for _, t := range tables {
			rec.ObserveTable(t.Name, len(t.Rows))
		}

		rec.Finish(startTime, time.Now())

		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	files := make([]string, 0, len(tables))
	for _, t := range tables {
		files = append(files, csvSink.Path(t.Name))
	}

	log.Info("Report complete", "duration", time.Since(startTime))
	fmt.Fprintf(stdout, "Export complete: %s\n", strings.Join(files, ", "))

	return nil
}

func exportSQLite(ctx context.Context, path string, tables []models.Table) error {
	db, err := sink.NewSQLiteSink(ctx, path)
	if err != nil {
		return fmt.Errorf("sqlite export failed: %w", err)
	}
	defer db.Close()

	for _, t := range tables {
		if err := db.WriteContext(ctx, t); err != nil {
			return fmt.Errorf("sqlite export failed: %w", err)
		}
	}

	return nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.accidents != "" {
		cfg.Input.Accidents = opts.accidents
	}

	if opts.vehicles != "" {
		cfg.Input.Vehicles = opts.vehicles
	}

	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}

	if opts.noCharts {
		cfg.Charts.Enabled = false
	}
}
