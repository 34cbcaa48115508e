package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRun(scenario string, computedAt time.Time) *domain.ProjectionRun {
	return &domain.ProjectionRun{
		Scenario:   scenario,
		Source:     domain.BaselineSourceCPWS,
		StartYear:  2025,
		Horizon:    10,
		ComputedAt: computedAt,
		Points: []domain.ProjectionPoint{
			{Year: 2025, FinancialYear: "2025/26", Supply: 23218, Ops: 18009, Gap: 5209},
			{Year: 2026, FinancialYear: "2026/27", Supply: 23600, Ops: 18027, Gap: 5573},
		},
	}
}

func TestProjectionRepository_CreateAndGetRun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectionRepository(db)
	ctx := context.Background()

	run := makeRun("baseline", time.Now().UTC())
	require.NoError(t, repo.CreateRun(ctx, run))

	got, err := repo.GetRunByID(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, "baseline", got.Scenario)
	require.Len(t, got.Points, 2)
	assert.Equal(t, 2025, got.Points[0].Year)
	assert.Equal(t, 5208, got.Points[0].Gap)
	assert.Equal(t, run.ID, got.Points[0].RunID)
}

func TestProjectionRepository_LatestRun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectionRepository(db)
	ctx := context.Background()

	older := makeRun("baseline", time.Now().UTC().Add(-time.Hour))
	newer := makeRun("baseline", time.Now().UTC())
	other := makeRun("optimistic", time.Now().UTC())
	require.NoError(t, repo.CreateRun(ctx, older))
	require.NoError(t, repo.CreateRun(ctx, newer))
	require.NoError(t, repo.CreateRun(ctx, other))

	got, err := repo.LatestRun(ctx, "baseline")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Len(t, got.Points, 2)
}

func TestProjectionRepository_DeleteRunsBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectionRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := makeRun("baseline", time.Now().UTC().Add(-time.Duration(i)*time.Hour))
		require.NoError(t, repo.CreateRun(ctx, run))
	}

	require.NoError(t, repo.DeleteRunsBefore(ctx, "baseline", 2))

	runs, total, err := repo.ListRuns(ctx, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, runs, 2)
}
