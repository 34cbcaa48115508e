// Package mapper converts domain models to API response DTOs.
package mapper

import (
	"time"

	"github.com/pharmacast/workforce-api/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ToSnapshotDTO(s *domain.Snapshot) domain.SnapshotDTO {
	return domain.SnapshotDTO{
		ID:         s.ID,
		Profession: string(s.Profession),
		Country:    s.Country,
		Year:       s.Year,
		Month:      s.Month,
		Headcount:  s.Headcount,
		CreatedAt:  formatTime(s.CreatedAt),
		UpdatedAt:  formatTime(s.UpdatedAt),
	}
}

func ToSnapshotDTOs(snapshots []domain.Snapshot) []domain.SnapshotDTO {
	dtos := make([]domain.SnapshotDTO, len(snapshots))
	for i := range snapshots {
		dtos[i] = ToSnapshotDTO(&snapshots[i])
	}
	return dtos
}

func ToImportBatchDTO(b *domain.ImportBatch) domain.ImportBatchDTO {
	return domain.ImportBatchDTO{
		ID:           b.ID,
		Filename:     b.Filename,
		Kind:         b.Kind,
		RowsImported: b.RowsImported,
		RowsSkipped:  b.RowsSkipped,
		Status:       string(b.Status),
		Error:        b.Error,
		CreatedAt:    formatTime(b.CreatedAt),
	}
}

func ToProjectionTableDTO(run *domain.ProjectionRun) domain.ProjectionTableDTO {
	rows := make([]domain.ProjectionRowDTO, len(run.Points))
	for i, p := range run.Points {
		rows[i] = domain.ProjectionRowDTO{
			Year:          p.Year,
			FinancialYear: p.FinancialYear,
			Scenario:      run.Scenario,
			Supply:        p.Supply,
			Ops:           p.Ops,
			Gap:           p.Gap,
		}
	}
	return domain.ProjectionTableDTO{
		Scenario:   run.Scenario,
		Source:     string(run.Source),
		StartYear:  run.StartYear,
		Horizon:    run.Horizon,
		ComputedAt: formatTime(run.ComputedAt),
		Rows:       rows,
	}
}
