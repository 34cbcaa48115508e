package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/ingest"
	"github.com/pharmacast/workforce-api/internal/mapper"
	"github.com/pharmacast/workforce-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dataset kinds accepted by ImportDatasets.
const (
	DatasetSnapshots = "snapshots"
	DatasetJoiners   = "joiners"
	DatasetLeavers   = "leavers"
)

// IngestService loads the published registration CSVs into the database,
// recording an ImportBatch per file for auditing.
type IngestService struct {
	snapshotRepo  *repository.SnapshotRepository
	flowRepo      *repository.FlowRepository
	importRepo    *repository.ImportRepository
	cfg           *config.IngestConfig
	baselineMonth int
	logger        *zap.Logger
}

func NewIngestService(
	snapshotRepo *repository.SnapshotRepository,
	flowRepo *repository.FlowRepository,
	importRepo *repository.ImportRepository,
	cfg *config.IngestConfig,
	baselineMonth int,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		snapshotRepo:  snapshotRepo,
		flowRepo:      flowRepo,
		importRepo:    importRepo,
		cfg:           cfg,
		baselineMonth: baselineMonth,
		logger:        logger,
	}
}

// ImportDatasets ingests the requested dataset kinds from the configured data
// directory. An empty list imports everything. A failed file is recorded as a
// failed batch and does not abort the remaining files.
func (s *IngestService) ImportDatasets(ctx context.Context, datasets []string) (*domain.ImportResultDTO, error) {
	for _, d := range datasets {
		if d != DatasetSnapshots && d != DatasetJoiners && d != DatasetLeavers {
			return nil, fmt.Errorf("%w: %s", ErrUnknownImportKind, d)
		}
	}

	wanted := func(kind string) bool {
		return len(datasets) == 0 || slices.Contains(datasets, kind)
	}

	var result domain.ImportResultDTO

	if wanted(DatasetSnapshots) {
		batch := s.importSnapshots(ctx)
		result.Batches = append(result.Batches, mapper.ToImportBatchDTO(batch))
	}
	if wanted(DatasetJoiners) {
		batch := s.importFlows(ctx, s.cfg.JoinersFile, domain.FlowJoiners)
		result.Batches = append(result.Batches, mapper.ToImportBatchDTO(batch))
	}
	if wanted(DatasetLeavers) {
		batch := s.importFlows(ctx, s.cfg.LeaversFile, domain.FlowLeavers)
		result.Batches = append(result.Batches, mapper.ToImportBatchDTO(batch))
	}

	return &result, nil
}

func (s *IngestService) importSnapshots(ctx context.Context) *domain.ImportBatch {
	path := filepath.Join(s.cfg.DataDir, s.cfg.RegistrantsFile)
	batch := &domain.ImportBatch{
		Filename: s.cfg.RegistrantsFile,
		Kind:     DatasetSnapshots,
		Status:   domain.ImportStatusCompleted,
	}

	records, res, err := ingest.ReadSnapshotsFile(path, s.cfg.Country, s.baselineMonth)
	if err != nil {
		return s.failBatch(ctx, batch, err)
	}

	for _, rec := range records {
		snapshot := &domain.Snapshot{
			Profession: rec.Profession,
			Country:    rec.Country,
			Year:       rec.Year,
			Month:      rec.Month,
			Headcount:  rec.Headcount,
		}
		if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return s.failBatch(ctx, batch, err)
		}
	}

	batch.RowsImported = res.Imported
	batch.RowsSkipped = res.Skipped
	s.finishBatch(ctx, batch)
	return batch
}

func (s *IngestService) importFlows(ctx context.Context, filename string, direction domain.FlowDirection) *domain.ImportBatch {
	path := filepath.Join(s.cfg.DataDir, filename)
	batch := &domain.ImportBatch{
		Filename: filename,
		Kind:     string(direction),
		Status:   domain.ImportStatusCompleted,
	}

	rows, res, err := ingest.ReadFlowsFile(path, direction)
	if err != nil {
		return s.failBatch(ctx, batch, err)
	}

	for _, row := range rows {
		record := &domain.FlowRecord{
			Profession: row.Profession,
			Direction:  direction,
			Year:       row.Year,
			Count:      row.Count,
		}
		if err := s.flowRepo.Upsert(ctx, record); err != nil {
			return s.failBatch(ctx, batch, err)
		}
	}

	batch.RowsImported = res.Imported
	batch.RowsSkipped = res.Skipped
	s.finishBatch(ctx, batch)
	return batch
}

func (s *IngestService) failBatch(ctx context.Context, batch *domain.ImportBatch, cause error) *domain.ImportBatch {
	s.logger.Error("Import failed",
		zap.String("filename", batch.Filename),
		zap.String("kind", batch.Kind),
		zap.Error(cause),
	)
	batch.Status = domain.ImportStatusFailed
	batch.Error = cause.Error()
	s.finishBatch(ctx, batch)
	return batch
}

func (s *IngestService) finishBatch(ctx context.Context, batch *domain.ImportBatch) {
	if err := s.importRepo.Create(ctx, batch); err != nil {
		s.logger.Error("Failed to record import batch",
			zap.String("filename", batch.Filename),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Import batch recorded",
		zap.String("filename", batch.Filename),
		zap.String("kind", batch.Kind),
		zap.String("status", string(batch.Status)),
		zap.Int("rows_imported", batch.RowsImported),
		zap.Int("rows_skipped", batch.RowsSkipped),
	)
}

// GetBatch returns one import batch by ID.
func (s *IngestService) GetBatch(ctx context.Context, id uuid.UUID) (*domain.ImportBatchDTO, error) {
	batch, err := s.importRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load import batch: %w", err)
	}
	dto := mapper.ToImportBatchDTO(batch)
	return &dto, nil
}

// ListBatches returns past import batches, newest first.
func (s *IngestService) ListBatches(ctx context.Context, page, pageSize int) ([]domain.ImportBatchDTO, int64, error) {
	batches, total, err := s.importRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list import batches: %w", err)
	}

	dtos := make([]domain.ImportBatchDTO, len(batches))
	for i := range batches {
		dtos[i] = mapper.ToImportBatchDTO(&batches[i])
	}
	return dtos, total, nil
}
