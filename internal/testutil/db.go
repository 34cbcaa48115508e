// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/pharmacast/workforce-api/internal/database"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory sqlite database with the full schema.
// Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	return db
}

// SeedSnapshot inserts one annual observation.
func SeedSnapshot(t *testing.T, db *gorm.DB, profession domain.Profession, year, headcount int) *domain.Snapshot {
	t.Helper()

	snapshot := &domain.Snapshot{
		Profession: profession,
		Country:    "England",
		Year:       year,
		Month:      3,
		Headcount:  headcount,
	}
	require.NoError(t, db.Create(snapshot).Error)
	return snapshot
}
