package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/mapper"
	"github.com/pharmacast/workforce-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SnapshotService manages the historical registration observations.
type SnapshotService struct {
	snapshotRepo *repository.SnapshotRepository
	country      string
	logger       *zap.Logger
}

func NewSnapshotService(snapshotRepo *repository.SnapshotRepository, country string, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		country:      country,
		logger:       logger,
	}
}

// List returns observations for one profession, optionally restricted to one
// observation month.
func (s *SnapshotService) List(ctx context.Context, profession domain.Profession, month int) ([]domain.SnapshotDTO, error) {
	snapshots, err := s.snapshotRepo.List(ctx, profession, s.country, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return mapper.ToSnapshotDTOs(snapshots), nil
}

// Create stores a new observation. An existing observation for the same
// profession, year and month is a conflict.
func (s *SnapshotService) Create(ctx context.Context, req *domain.CreateSnapshotRequest) (*domain.SnapshotDTO, error) {
	country := req.Country
	if country == "" {
		country = s.country
	}

	existing, err := s.snapshotRepo.GetByYear(ctx, domain.Profession(req.Profession), country, req.Year, req.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing snapshot: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: observation for %s %d-%02d already exists", ErrConflict, req.Profession, req.Year, req.Month)
	}

	snapshot := &domain.Snapshot{
		Profession: domain.Profession(req.Profession),
		Country:    country,
		Year:       req.Year,
		Month:      req.Month,
		Headcount:  req.Headcount,
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	s.logger.Info("Snapshot created",
		zap.String("profession", req.Profession),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("headcount", req.Headcount),
	)

	dto := mapper.ToSnapshotDTO(snapshot)
	return &dto, nil
}

// Delete removes one observation by ID.
func (s *SnapshotService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.snapshotRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err := s.snapshotRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
