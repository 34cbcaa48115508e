package jobs

import (
	"context"
	"time"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/projection"
	"go.uber.org/zap"
)

// RefreshJobName is the name of the projection refresh job.
const RefreshJobName = "projection_refresh"

// DefaultKeepRuns is how many stored runs per scenario the refresh retains.
const DefaultKeepRuns = 5

// ProjectionRefresher recomputes and stores projection runs for every
// scenario. The interface allows the job to call the service without
// importing the service package directly.
type ProjectionRefresher interface {
	RefreshAll(ctx context.Context, source domain.BaselineSource, keepRuns int) error
}

// ArtifactRenderer re-renders the derived artifacts (gap charts and the
// projection workbook) after a refresh. May be nil when artifact storage
// is not configured.
type ArtifactRenderer interface {
	RenderChart(ctx context.Context, scenarioName string, source domain.BaselineSource) (string, error)
	RenderWorkbook(ctx context.Context, source domain.BaselineSource) (string, error)
}

// RefreshJob recomputes all scenario projections from the current baseline
// data and refreshes the stored chart and workbook artifacts.
type RefreshJob struct {
	projections ProjectionRefresher
	artifacts   ArtifactRenderer
	source      domain.BaselineSource
	logger      *zap.Logger
	timeout     time.Duration
}

// NewRefreshJob creates a new projection refresh job.
// The timeout controls how long one refresh is allowed to run.
func NewRefreshJob(projections ProjectionRefresher, artifacts ArtifactRenderer, source domain.BaselineSource, logger *zap.Logger, timeout time.Duration) *RefreshJob {
	return &RefreshJob{
		projections: projections,
		artifacts:   artifacts,
		source:      source,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes the projection refresh.
// This is called by the scheduler according to the cron expression.
func (j *RefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting projection refresh job",
		zap.String("source", string(j.source)))

	if err := j.projections.RefreshAll(ctx, j.source, DefaultKeepRuns); err != nil {
		j.logger.Error("projection refresh failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	var chartsRendered, chartsFailed int
	if j.artifacts != nil {
		for _, sc := range projection.Scenarios() {
			if _, err := j.artifacts.RenderChart(ctx, string(sc), j.source); err != nil {
				j.logger.Error("chart render failed",
					zap.String("scenario", string(sc)),
					zap.Error(err))
				chartsFailed++
				continue
			}
			chartsRendered++
		}
		if _, err := j.artifacts.RenderWorkbook(ctx, j.source); err != nil {
			j.logger.Error("workbook render failed", zap.Error(err))
		}
	}

	j.logger.Info("projection refresh job completed",
		zap.Int("charts_rendered", chartsRendered),
		zap.Int("charts_failed", chartsFailed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterRefreshJob registers the projection refresh job with the scheduler.
// If runOnStartup is true it also runs one refresh immediately in a
// background goroutine so it doesn't block API startup.
// artifacts can be nil if artifact rendering is not needed.
func RegisterRefreshJob(scheduler *Scheduler, projections ProjectionRefresher, artifacts ArtifactRenderer, source domain.BaselineSource, logger *zap.Logger, cronExpr string, timeout time.Duration, runOnStartup bool) error {
	job := NewRefreshJob(projections, artifacts, source, logger, timeout)

	if runOnStartup {
		go job.Run()
	}

	return scheduler.AddJob(RefreshJobName, cronExpr, job.Run)
}
