package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are generated application-side so the
// same models work on both postgres and sqlite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Profession identifies a regulated pharmacy profession tracked by the model.
type Profession string

const (
	ProfessionPharmacist Profession = "Pharmacist"
	ProfessionTechnician Profession = "Pharmacy Technician"
)

// Professions lists the tracked professions in presentation order.
func Professions() []Profession {
	return []Profession{ProfessionPharmacist, ProfessionTechnician}
}

// Snapshot is one historical registration observation: the total number of
// registrants for a profession in a country at a point in time. Annual
// snapshots are taken in March; other months are monthly actuals.
type Snapshot struct {
	BaseModel
	Profession Profession `gorm:"type:varchar(50);not null;uniqueIndex:idx_snapshot_obs,priority:1"`
	Country    string     `gorm:"type:varchar(50);not null;default:'England';uniqueIndex:idx_snapshot_obs,priority:2"`
	Year       int        `gorm:"not null;uniqueIndex:idx_snapshot_obs,priority:3"`
	Month      int        `gorm:"not null;uniqueIndex:idx_snapshot_obs,priority:4"`
	Headcount  int        `gorm:"not null"`
}

// FlowDirection classifies a registration flow record.
type FlowDirection string

const (
	FlowJoiners FlowDirection = "joiners"
	FlowLeavers FlowDirection = "leavers"
)

// FlowRecord is an annual count of registrants joining or leaving a register.
type FlowRecord struct {
	BaseModel
	Profession Profession    `gorm:"type:varchar(50);not null;uniqueIndex:idx_flow_obs,priority:1"`
	Direction  FlowDirection `gorm:"type:varchar(20);not null;uniqueIndex:idx_flow_obs,priority:2"`
	Year       int           `gorm:"not null;uniqueIndex:idx_flow_obs,priority:3"`
	Count      int           `gorm:"not null"`
}

// BaselineSource selects where baseline workforce values come from.
type BaselineSource string

const (
	// BaselineSourceCPWS uses Community Pharmacy Workforce Survey FTE values,
	// from configuration or the CPWS data warehouse.
	BaselineSourceCPWS BaselineSource = "cpws"
	// BaselineSourceGPhC uses GPhC registrant headcounts at the baseline snapshot.
	BaselineSourceGPhC BaselineSource = "gphc"
)

// ProjectionRun is one stored execution of the projection model: a scenario,
// a baseline source, and the resulting per-year points.
type ProjectionRun struct {
	BaseModel
	Scenario   string            `gorm:"type:varchar(20);not null;index"`
	Source     BaselineSource    `gorm:"type:varchar(10);not null"`
	StartYear  int               `gorm:"not null"`
	Horizon    int               `gorm:"not null"`
	ComputedAt time.Time         `gorm:"not null"`
	Points     []ProjectionPoint `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// ProjectionPoint is one projected year within a run.
type ProjectionPoint struct {
	BaseModel
	RunID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Year          int       `gorm:"not null"`
	FinancialYear string    `gorm:"type:varchar(10);not null"`
	Supply        int       `gorm:"not null"`
	Ops           int       `gorm:"not null"`
	Gap           int       `gorm:"not null"`
}

// ImportStatus tracks the outcome of a CSV import batch.
type ImportStatus string

const (
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportBatch records one ingest of the registration datasets, for auditing
// which files fed the stored snapshots.
type ImportBatch struct {
	BaseModel
	Filename     string       `gorm:"type:varchar(255);not null"`
	Kind         string       `gorm:"type:varchar(50);not null"`
	RowsImported int          `gorm:"not null"`
	RowsSkipped  int          `gorm:"not null"`
	Status       ImportStatus `gorm:"type:varchar(20);not null"`
	Error        string       `gorm:"type:varchar(1000)"`
}
