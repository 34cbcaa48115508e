package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"gorm.io/gorm"
)

type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

func (r *ImportRepository) Create(ctx context.Context, batch *domain.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *ImportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImportBatch, error) {
	var batch domain.ImportBatch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *ImportRepository) List(ctx context.Context, page, pageSize int) ([]domain.ImportBatch, int64, error) {
	var batches []domain.ImportBatch
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ImportBatch{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&batches).Error

	return batches, total, err
}
