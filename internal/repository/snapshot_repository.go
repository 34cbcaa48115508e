package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, snapshot *domain.Snapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// Upsert inserts or replaces the observation for (profession, country, year, month).
// Re-running an ingest must not duplicate rows.
func (r *SnapshotRepository) Upsert(ctx context.Context, snapshot *domain.Snapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "profession"}, {Name: "country"}, {Name: "year"}, {Name: "month"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"headcount", "updated_at"}),
	}).Create(snapshot).Error
}

func (r *SnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Snapshot{}, "id = ?", id).Error
}

// List returns annual snapshots for a profession ordered by year, optionally
// restricted to one observation month.
func (r *SnapshotRepository) List(ctx context.Context, profession domain.Profession, country string, month int) ([]domain.Snapshot, error) {
	var snapshots []domain.Snapshot
	query := r.db.WithContext(ctx).
		Where("profession = ? AND country = ?", profession, country)
	if month > 0 {
		query = query.Where("month = ?", month)
	}
	err := query.Order("year ASC, month ASC").Find(&snapshots).Error
	return snapshots, err
}

// EarliestAndLatest returns the first and last annual observations for a
// profession at the given snapshot month. Returns gorm.ErrRecordNotFound
// when fewer than two observations exist.
func (r *SnapshotRepository) EarliestAndLatest(ctx context.Context, profession domain.Profession, country string, month int) (*domain.Snapshot, *domain.Snapshot, error) {
	var earliest, latest domain.Snapshot

	base := r.db.WithContext(ctx).
		Where("profession = ? AND country = ? AND month = ?", profession, country, month)

	if err := base.Session(&gorm.Session{}).Order("year ASC").First(&earliest).Error; err != nil {
		return nil, nil, err
	}
	if err := base.Session(&gorm.Session{}).Order("year DESC").First(&latest).Error; err != nil {
		return nil, nil, err
	}
	if earliest.Year == latest.Year {
		return nil, nil, gorm.ErrRecordNotFound
	}

	return &earliest, &latest, nil
}

// GetByYear returns the observation for a specific year and month.
func (r *SnapshotRepository) GetByYear(ctx context.Context, profession domain.Profession, country string, year, month int) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := r.db.WithContext(ctx).
		Where("profession = ? AND country = ? AND year = ? AND month = ?", profession, country, year, month).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Snapshot{}).Count(&count).Error
	return int(count), err
}
