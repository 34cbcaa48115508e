package repository_test

import (
	"context"
	"testing"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSnapshotRepository_UpsertReplacesObservation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	first := &domain.Snapshot{
		Profession: domain.ProfessionPharmacist,
		Country:    "England",
		Year:       2025,
		Month:      3,
		Headcount:  63000,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.Snapshot{
		Profession: domain.ProfessionPharmacist,
		Country:    "England",
		Year:       2025,
		Month:      3,
		Headcount:  63297,
	}
	require.NoError(t, repo.Upsert(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := repo.GetByYear(ctx, domain.ProfessionPharmacist, "England", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 63297, got.Headcount)
}

func TestSnapshotRepository_ListFiltersByMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2023, 60000)
	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2024, 61500)
	require.NoError(t, db.Create(&domain.Snapshot{
		Profession: domain.ProfessionPharmacist,
		Country:    "England",
		Year:       2024,
		Month:      9,
		Headcount:  62000,
	}).Error)

	annual, err := repo.List(ctx, domain.ProfessionPharmacist, "England", 3)
	require.NoError(t, err)
	require.Len(t, annual, 2)
	assert.Equal(t, 2023, annual[0].Year)
	assert.Equal(t, 2024, annual[1].Year)

	all, err := repo.List(ctx, domain.ProfessionPharmacist, "England", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSnapshotRepository_EarliestAndLatest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2018, 54128)
	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2021, 58000)
	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2025, 63297)

	earliest, latest, err := repo.EarliestAndLatest(ctx, domain.ProfessionPharmacist, "England", 3)
	require.NoError(t, err)
	assert.Equal(t, 2018, earliest.Year)
	assert.Equal(t, 54128, earliest.Headcount)
	assert.Equal(t, 2025, latest.Year)
	assert.Equal(t, 63297, latest.Headcount)
}

func TestSnapshotRepository_EarliestAndLatest_RequiresTwoYears(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	testutil.SeedSnapshot(t, db, domain.ProfessionTechnician, 2025, 25729)

	_, _, err := repo.EarliestAndLatest(ctx, domain.ProfessionTechnician, "England", 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	ctx := context.Background()

	snap := testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2020, 56000)

	require.NoError(t, repo.Delete(ctx, snap.ID))

	_, err := repo.GetByID(ctx, snap.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
