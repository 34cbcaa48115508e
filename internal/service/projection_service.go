package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/mapper"
	"github.com/pharmacast/workforce-api/internal/projection"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/warehouse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectionService derives growth rates from the stored registration history
// and produces supply/demand gap projections under the configured scenarios.
type ProjectionService struct {
	snapshotRepo   *repository.SnapshotRepository
	projectionRepo *repository.ProjectionRepository
	warehouse      *warehouse.Client
	cfg            *config.ProjectionConfig
	country        string
	logger         *zap.Logger
}

func NewProjectionService(
	snapshotRepo *repository.SnapshotRepository,
	projectionRepo *repository.ProjectionRepository,
	warehouseClient *warehouse.Client,
	cfg *config.ProjectionConfig,
	country string,
	logger *zap.Logger,
) *ProjectionService {
	return &ProjectionService{
		snapshotRepo:   snapshotRepo,
		projectionRepo: projectionRepo,
		warehouse:      warehouseClient,
		cfg:            cfg,
		country:        country,
		logger:         logger,
	}
}

// growthInput pairs one profession's derived rate with the observations it
// came from.
type growthInput struct {
	profession domain.Profession
	rate       projection.GrowthRate
	earliest   *domain.Snapshot
	latest     *domain.Snapshot
}

func (s *ProjectionService) growthInputs(ctx context.Context) ([]growthInput, error) {
	var inputs []growthInput
	for _, prof := range domain.Professions() {
		earliest, latest, err := s.snapshotRepo.EarliestAndLatest(ctx, prof, s.country, s.cfg.BaselineMonth)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientHistory, prof)
			}
			return nil, fmt.Errorf("failed to load snapshots for %s: %w", prof, err)
		}

		rate, err := projection.NewGrowthRate(
			float64(earliest.Headcount),
			float64(latest.Headcount),
			latest.Year-earliest.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to derive growth rate for %s: %w", prof, err)
		}

		inputs = append(inputs, growthInput{
			profession: prof,
			rate:       rate,
			earliest:   earliest,
			latest:     latest,
		})
	}
	return inputs, nil
}

// GrowthRates returns the historical compound annual growth rate per
// profession, derived from the earliest and latest annual snapshots.
func (s *ProjectionService) GrowthRates(ctx context.Context) ([]domain.GrowthRateDTO, error) {
	inputs, err := s.growthInputs(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.GrowthRateDTO, len(inputs))
	for i, in := range inputs {
		dtos[i] = domain.GrowthRateDTO{
			Profession:    string(in.profession),
			Baseline:      in.latest.Headcount,
			RatePct:       in.rate.RatePct(),
			AnnualChange:  in.rate.AnnualChange,
			ChangePeriod:  int(in.rate.ChangeOverPeriod),
			YearsElapsed:  in.rate.YearsElapsed,
			FirstYear:     in.earliest.Year,
			BaselineYear:  in.latest.Year,
			FinancialYear: projection.FinancialYear(in.latest.Year),
		}
	}
	return dtos, nil
}

// baselines resolves the starting workforce values per profession for the
// given source. CPWS baselines prefer the live warehouse aggregate and fall
// back to the configured survey values; GPhC baselines use the latest
// registrant headcounts.
func (s *ProjectionService) baselines(ctx context.Context, source domain.BaselineSource, inputs []growthInput) ([]projection.ProfessionBaseline, error) {
	switch source {
	case domain.BaselineSourceGPhC:
		out := make([]projection.ProfessionBaseline, len(inputs))
		for i, in := range inputs {
			out[i] = projection.ProfessionBaseline{
				Profession: string(in.profession),
				Baseline:   float64(in.latest.Headcount),
				Rate:       in.rate.Rate,
			}
		}
		return out, nil

	case domain.BaselineSourceCPWS:
		pharm := s.cfg.CPWSPharmacistsFTE
		tech := s.cfg.CPWSTechniciansFTE

		if s.warehouse.IsEnabled() {
			if fetched, err := s.warehouse.FetchCurrentBaselines(ctx); err == nil {
				pharm = fetched.PharmacistsFTE
				tech = fetched.TechniciansFTE
			} else {
				s.logger.Warn("Falling back to configured CPWS baselines",
					zap.Error(err),
				)
			}
		}

		out := make([]projection.ProfessionBaseline, 0, len(inputs))
		for _, in := range inputs {
			baseline := pharm
			if in.profession == domain.ProfessionTechnician {
				baseline = tech
			}
			out = append(out, projection.ProfessionBaseline{
				Profession: string(in.profession),
				Baseline:   baseline,
				Rate:       in.rate.Rate,
			})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown baseline source %q", ErrInvalidInput, source)
	}
}

// Compute runs the projection for one scenario, persists it as a run, and
// returns the resulting table.
func (s *ProjectionService) Compute(ctx context.Context, sc projection.Scenario, source domain.BaselineSource) (*domain.ProjectionTableDTO, error) {
	inputs, err := s.growthInputs(ctx)
	if err != nil {
		return nil, err
	}

	baselines, err := s.baselines(ctx, source, inputs)
	if err != nil {
		return nil, err
	}

	rows, err := projection.BuildGapSeries(
		s.cfg.StartYear,
		s.cfg.Horizon,
		baselines,
		s.cfg.OpsBaselineFTE,
		s.cfg.OpsGrowthRate(),
		sc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build projection: %w", err)
	}

	run := &domain.ProjectionRun{
		Scenario:   sc.String(),
		Source:     source,
		StartYear:  s.cfg.StartYear,
		Horizon:    s.cfg.Horizon,
		ComputedAt: time.Now().UTC(),
	}
	for _, row := range rows {
		run.Points = append(run.Points, domain.ProjectionPoint{
			Year:          row.Year,
			FinancialYear: row.FinancialYear,
			Supply:        row.Supply,
			Ops:           row.Ops,
			Gap:           row.Gap,
		})
	}

	if err := s.projectionRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to persist projection run: %w", err)
	}

	s.logger.Info("Projection computed",
		zap.String("scenario", sc.String()),
		zap.String("source", string(source)),
		zap.Int("start_year", s.cfg.StartYear),
		zap.Int("horizon", s.cfg.Horizon),
		zap.Int("final_gap", rows[len(rows)-1].Gap),
	)

	dto := mapper.ToProjectionTableDTO(run)
	return &dto, nil
}

// GetTable returns the latest stored projection for a scenario, computing one
// on demand when none exists or refresh is requested.
func (s *ProjectionService) GetTable(ctx context.Context, scenarioName string, source domain.BaselineSource, refresh bool) (*domain.ProjectionTableDTO, error) {
	sc, err := projection.ParseScenario(scenarioName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if source == "" {
		source = domain.BaselineSource(s.cfg.DefaultSource)
	}

	if !refresh {
		run, err := s.projectionRepo.LatestRun(ctx, sc.String())
		if err == nil && run.Source == source {
			dto := mapper.ToProjectionTableDTO(run)
			return &dto, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load projection run: %w", err)
		}
	}

	return s.Compute(ctx, sc, source)
}

// Preview computes a table for a caller-chosen horizon without persisting a
// run. Stored runs always use the configured horizon.
func (s *ProjectionService) Preview(ctx context.Context, scenarioName string, source domain.BaselineSource, horizon int) (*domain.ProjectionTableDTO, error) {
	sc, err := projection.ParseScenario(scenarioName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if source == "" {
		source = domain.BaselineSource(s.cfg.DefaultSource)
	}
	if horizon < 1 || horizon > 50 {
		return nil, fmt.Errorf("%w: horizon must be between 1 and 50", ErrInvalidInput)
	}

	inputs, err := s.growthInputs(ctx)
	if err != nil {
		return nil, err
	}
	baselines, err := s.baselines(ctx, source, inputs)
	if err != nil {
		return nil, err
	}

	rows, err := projection.BuildGapSeries(
		s.cfg.StartYear,
		horizon,
		baselines,
		s.cfg.OpsBaselineFTE,
		s.cfg.OpsGrowthRate(),
		sc,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build projection: %w", err)
	}

	dto := &domain.ProjectionTableDTO{
		Scenario:   sc.String(),
		Source:     string(source),
		StartYear:  s.cfg.StartYear,
		Horizon:    horizon,
		ComputedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:       make([]domain.ProjectionRowDTO, 0, len(rows)),
	}
	for _, row := range rows {
		dto.Rows = append(dto.Rows, domain.ProjectionRowDTO{
			Year:          row.Year,
			FinancialYear: row.FinancialYear,
			Scenario:      sc.String(),
			Supply:        row.Supply,
			Ops:           row.Ops,
			Gap:           row.Gap,
		})
	}
	return dto, nil
}

// RefreshAll recomputes and persists every scenario, keeping only the newest
// runs per scenario. Used by the scheduled refresh job and at startup.
func (s *ProjectionService) RefreshAll(ctx context.Context, source domain.BaselineSource, keepRuns int) error {
	if source == "" {
		source = domain.BaselineSource(s.cfg.DefaultSource)
	}

	for _, sc := range projection.Scenarios() {
		if _, err := s.Compute(ctx, sc, source); err != nil {
			return fmt.Errorf("refresh failed for scenario %s: %w", sc, err)
		}
		if keepRuns > 0 {
			if err := s.projectionRepo.DeleteRunsBefore(ctx, sc.String(), keepRuns); err != nil {
				s.logger.Warn("Failed to prune old projection runs",
					zap.String("scenario", sc.String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
