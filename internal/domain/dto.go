package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

// ProjectionRowDTO is one year of the gap-analysis table.
type ProjectionRowDTO struct {
	Year          int    `json:"year"`
	FinancialYear string `json:"financialYear"`
	Scenario      string `json:"scenario"`
	Supply        int    `json:"supply"`
	Ops           int    `json:"ops"`
	Gap           int    `json:"gap"`
}

// ProjectionTableDTO is a full projection result for one scenario.
type ProjectionTableDTO struct {
	Scenario   string             `json:"scenario"`
	Source     string             `json:"source"`
	StartYear  int                `json:"startYear"`
	Horizon    int                `json:"horizon"`
	ComputedAt string             `json:"computedAt"` // ISO 8601
	Rows       []ProjectionRowDTO `json:"rows"`
}

// GrowthRateDTO summarizes the historical CAGR for one profession.
type GrowthRateDTO struct {
	Profession    string  `json:"profession"`
	Baseline      int     `json:"baseline"`
	RatePct       float64 `json:"ratePct"`
	AnnualChange  float64 `json:"annualChange"`
	ChangePeriod  int     `json:"changePeriod"`
	YearsElapsed  int     `json:"yearsElapsed"`
	FirstYear     int     `json:"firstYear"`
	BaselineYear  int     `json:"baselineYear"`
	FinancialYear string  `json:"financialYear"`
}

// SnapshotDTO is one historical registration observation.
type SnapshotDTO struct {
	ID         uuid.UUID `json:"id"`
	Profession string    `json:"profession"`
	Country    string    `json:"country"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Headcount  int       `json:"headcount"`
	CreatedAt  string    `json:"createdAt"` // ISO 8601
	UpdatedAt  string    `json:"updatedAt"` // ISO 8601
}

// CreateSnapshotRequest creates a single registration observation.
type CreateSnapshotRequest struct {
	Profession string `json:"profession" validate:"required,oneof=Pharmacist 'Pharmacy Technician'"`
	Country    string `json:"country" validate:"omitempty,max=50"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
	Month      int    `json:"month" validate:"required,gte=1,lte=12"`
	Headcount  int    `json:"headcount" validate:"required,gt=0"`
}

// ImportRequest triggers an ingest of the configured CSV datasets.
type ImportRequest struct {
	// Datasets limits the import to specific dataset kinds. Empty means all.
	Datasets []string `json:"datasets" validate:"omitempty,dive,oneof=snapshots joiners leavers"`
}

// ImportBatchDTO reports one ingested file.
type ImportBatchDTO struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	Kind         string    `json:"kind"`
	RowsImported int       `json:"rowsImported"`
	RowsSkipped  int       `json:"rowsSkipped"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    string    `json:"createdAt"` // ISO 8601
}

// ImportResultDTO reports the outcome of an import request.
type ImportResultDTO struct {
	Batches []ImportBatchDTO `json:"batches"`
}
