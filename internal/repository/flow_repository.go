package repository

import (
	"context"

	"github.com/pharmacast/workforce-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlowRepository struct {
	db *gorm.DB
}

func NewFlowRepository(db *gorm.DB) *FlowRepository {
	return &FlowRepository{db: db}
}

// Upsert inserts or replaces the flow count for (profession, direction, year).
func (r *FlowRepository) Upsert(ctx context.Context, record *domain.FlowRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "profession"}, {Name: "direction"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
	}).Create(record).Error
}

func (r *FlowRepository) List(ctx context.Context, profession domain.Profession, direction domain.FlowDirection) ([]domain.FlowRecord, error) {
	var records []domain.FlowRecord
	err := r.db.WithContext(ctx).
		Where("profession = ? AND direction = ?", profession, direction).
		Order("year ASC").
		Find(&records).Error
	return records, err
}

// NetFlowByYear returns joiners minus leavers per year for a profession,
// for years where both directions were recorded.
func (r *FlowRepository) NetFlowByYear(ctx context.Context, profession domain.Profession) (map[int]int, error) {
	var records []domain.FlowRecord
	err := r.db.WithContext(ctx).
		Where("profession = ?", profession).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	joiners := make(map[int]int)
	leavers := make(map[int]int)
	for _, rec := range records {
		switch rec.Direction {
		case domain.FlowJoiners:
			joiners[rec.Year] = rec.Count
		case domain.FlowLeavers:
			leavers[rec.Year] = rec.Count
		}
	}

	net := make(map[int]int)
	for year, j := range joiners {
		if l, ok := leavers[year]; ok {
			net[year] = j - l
		}
	}
	return net, nil
}
