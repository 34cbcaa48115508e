package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/projection"
	"github.com/pharmacast/workforce-api/internal/render"
	"github.com/pharmacast/workforce-api/internal/storage"
	"go.uber.org/zap"
)

// Artifact content types
const (
	ContentTypePNG  = "image/png"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ArtifactService renders projection charts and workbooks and keeps the
// latest copy of each in artifact storage.
type ArtifactService struct {
	projections *ProjectionService
	store       storage.Storage
	logger      *zap.Logger
}

func NewArtifactService(projections *ProjectionService, store storage.Storage, logger *zap.Logger) *ArtifactService {
	return &ArtifactService{
		projections: projections,
		store:       store,
		logger:      logger,
	}
}

// ChartKey is the storage key of the latest gap chart for a scenario.
func ChartKey(scenario string) string {
	return fmt.Sprintf("charts/gap-%s.png", scenario)
}

// WorkbookKey is the storage key of the latest projection workbook.
func WorkbookKey() string {
	return "exports/projection.xlsx"
}

// renderToStorage renders into a temp file and uploads it under key.
func (s *ArtifactService) renderToStorage(ctx context.Context, key, contentType string, renderFn func(path string) error) error {
	tmp, err := os.MkdirTemp("", "workforce-render-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	path := filepath.Join(tmp, filepath.Base(key))
	if err := renderFn(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open rendered artifact: %w", err)
	}
	defer f.Close()

	size, err := s.store.Upload(ctx, key, contentType, f)
	if err != nil {
		return fmt.Errorf("failed to store artifact: %w", err)
	}

	s.logger.Info("Artifact rendered",
		zap.String("key", key),
		zap.Int64("size", size),
	)
	return nil
}

// RenderChart produces the gap chart for one scenario and stores it.
// Returns the storage key.
func (s *ArtifactService) RenderChart(ctx context.Context, scenarioName string, source domain.BaselineSource) (string, error) {
	table, err := s.projections.GetTable(ctx, scenarioName, source, false)
	if err != nil {
		return "", err
	}

	key := ChartKey(table.Scenario)
	err = s.renderToStorage(ctx, key, ContentTypePNG, func(path string) error {
		return render.GapChart(table, path)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// RenderWorkbook produces the xlsx export covering every scenario plus the
// growth-rate summary, and stores it. Returns the storage key.
func (s *ArtifactService) RenderWorkbook(ctx context.Context, source domain.BaselineSource) (string, error) {
	var tables []*domain.ProjectionTableDTO
	for _, scenario := range projection.Scenarios() {
		table, err := s.projections.GetTable(ctx, scenario.String(), source, false)
		if err != nil {
			return "", err
		}
		tables = append(tables, table)
	}

	rates, err := s.projections.GrowthRates(ctx)
	if err != nil {
		return "", err
	}

	key := WorkbookKey()
	err = s.renderToStorage(ctx, key, ContentTypeXLSX, func(path string) error {
		return render.GapWorkbook(tables, rates, path)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Open streams a stored artifact.
func (s *ArtifactService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Download(ctx, key)
}
