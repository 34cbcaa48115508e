// Command workforce runs the projection model from the command line, against
// the same configuration and database as the API. With the default sqlite
// driver it needs no running services: ingest the GPhC datasets, then print
// or render the projections.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/database"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/logger"
	"github.com/pharmacast/workforce-api/internal/projection"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/service"
	"github.com/pharmacast/workforce-api/internal/storage"
)

const usage = `usage: workforce <command> [args]

commands:
  ingest [datasets...]   import the GPhC CSV datasets (snapshots, joiners, leavers)
  run [scenario]         compute and print the gap projection (default: baseline)
  rates                  print the derived growth rates
  chart [scenario]       render the gap chart PNG into artifact storage
  export                 render the projection workbook into artifact storage
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg         *config.Config
	snapshots   *repository.SnapshotRepository
	projections *service.ProjectionService
	ingest      *service.IngestService
	artifacts   *service.ArtifactService
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	snapshotRepo := repository.NewSnapshotRepository(db)
	flowRepo := repository.NewFlowRepository(db)
	projectionRepo := repository.NewProjectionRepository(db)
	importRepo := repository.NewImportRepository(db)

	projections := service.NewProjectionService(snapshotRepo, projectionRepo, nil, &cfg.Projection, cfg.Ingest.Country, log)

	a := &app{
		cfg:         cfg,
		snapshots:   snapshotRepo,
		projections: projections,
		ingest:      service.NewIngestService(snapshotRepo, flowRepo, importRepo, &cfg.Ingest, cfg.Projection.BaselineMonth, log),
		artifacts:   service.NewArtifactService(projections, fileStorage, log),
	}

	ctx := context.Background()

	switch args[0] {
	case "ingest":
		return a.runIngest(ctx, args[1:])
	case "run":
		return a.runProjection(ctx, scenarioArg(args[1:]))
	case "rates":
		return a.runRates(ctx)
	case "chart":
		return a.runChart(ctx, scenarioArg(args[1:]))
	case "export":
		return a.runExport(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func scenarioArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return string(projection.ScenarioBaseline)
}

func (a *app) source() domain.BaselineSource {
	return domain.BaselineSource(a.cfg.Projection.DefaultSource)
}

func (a *app) runIngest(ctx context.Context, datasets []string) error {
	result, err := a.ingest.ImportDatasets(ctx, datasets)
	if err != nil {
		return err
	}

	for _, b := range result.Batches {
		if b.Status == string(domain.ImportStatusFailed) {
			fmt.Printf("%-12s %s: FAILED (%s)\n", b.Kind, b.Filename, b.Error)
			continue
		}
		fmt.Printf("%-12s %s: %d imported, %d skipped\n", b.Kind, b.Filename, b.RowsImported, b.RowsSkipped)
	}
	return nil
}

func (a *app) runProjection(ctx context.Context, scenario string) error {
	// An empty database is bootstrapped from the bundled CSVs.
	count, err := a.snapshots.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No stored snapshots, ingesting datasets first")
		if err := a.runIngest(ctx, nil); err != nil {
			return err
		}
		fmt.Println()
	}

	table, err := a.projections.GetTable(ctx, scenario, a.source(), true)
	if err != nil {
		return err
	}

	fmt.Printf("Scenario %s, source %s, computed %s\n\n", table.Scenario, table.Source, table.ComputedAt)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tSupply (FTE)\tOps demand (FTE)\tGap (FTE)\t")
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n", row.FinancialYear, row.Supply, row.Ops, row.Gap)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	key, err := a.artifacts.RenderChart(ctx, scenario, a.source())
	if err != nil {
		return err
	}
	fmt.Printf("\nChart rendered to %s\n", key)
	return nil
}

func (a *app) runRates(ctx context.Context) error {
	rates, err := a.projections.GrowthRates(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Profession\tFirst year\tBaseline\tChange\tCAGR (%)\t")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%d\t%d\t%+d\t%.2f\t\n", r.Profession, r.FirstYear, r.Baseline, r.ChangePeriod, r.RatePct)
	}
	return w.Flush()
}

func (a *app) runChart(ctx context.Context, scenario string) error {
	key, err := a.artifacts.RenderChart(ctx, scenario, a.source())
	if err != nil {
		return err
	}
	fmt.Printf("Chart rendered to %s\n", key)
	return nil
}

func (a *app) runExport(ctx context.Context) error {
	key, err := a.artifacts.RenderWorkbook(ctx, a.source())
	if err != nil {
		return err
	}
	fmt.Printf("Workbook rendered to %s\n", key)
	return nil
}
