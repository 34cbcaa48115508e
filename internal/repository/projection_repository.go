package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"gorm.io/gorm"
)

type ProjectionRepository struct {
	db *gorm.DB
}

func NewProjectionRepository(db *gorm.DB) *ProjectionRepository {
	return &ProjectionRepository{db: db}
}

// CreateRun stores a run together with its points in one transaction.
func (r *ProjectionRepository) CreateRun(ctx context.Context, run *domain.ProjectionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *ProjectionRepository) GetRunByID(ctx context.Context, id uuid.UUID) (*domain.ProjectionRun, error) {
	var run domain.ProjectionRun
	err := r.db.WithContext(ctx).
		Preload("Points", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC")
		}).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestRun returns the most recently computed run for a scenario.
func (r *ProjectionRepository) LatestRun(ctx context.Context, scenario string) (*domain.ProjectionRun, error) {
	var run domain.ProjectionRun
	err := r.db.WithContext(ctx).
		Preload("Points", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC")
		}).
		Where("scenario = ?", scenario).
		Order("computed_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *ProjectionRepository) ListRuns(ctx context.Context, page, pageSize int) ([]domain.ProjectionRun, int64, error) {
	var runs []domain.ProjectionRun
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ProjectionRun{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("computed_at DESC").Find(&runs).Error

	return runs, total, err
}

// DeleteRunsBefore removes runs older than the newest keepCount runs for a
// scenario. Used by the refresh job to bound table growth.
func (r *ProjectionRepository) DeleteRunsBefore(ctx context.Context, scenario string, keepCount int) error {
	var keep []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectionRun{}).
		Where("scenario = ?", scenario).
		Order("computed_at DESC").
		Limit(keepCount).
		Pluck("id", &keep).Error
	if err != nil {
		return err
	}
	if len(keep) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Where("scenario = ? AND id NOT IN ?", scenario, keep).
		Delete(&domain.ProjectionRun{}).Error
}
