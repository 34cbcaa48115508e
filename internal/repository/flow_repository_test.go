package repository_test

import (
	"context"
	"testing"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFlow(t *testing.T, repo *repository.FlowRepository, direction domain.FlowDirection, year, count int) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &domain.FlowRecord{
		Profession: domain.ProfessionPharmacist,
		Direction:  direction,
		Year:       year,
		Count:      count,
	}))
}

func TestFlowRepository_UpsertAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFlowRepository(db)
	ctx := context.Background()

	seedFlow(t, repo, domain.FlowJoiners, 2023, 3000)
	seedFlow(t, repo, domain.FlowJoiners, 2023, 3100) // replaces previous
	seedFlow(t, repo, domain.FlowJoiners, 2024, 3200)

	records, err := repo.List(ctx, domain.ProfessionPharmacist, domain.FlowJoiners)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3100, records[0].Count)
	assert.Equal(t, 3200, records[1].Count)
}

func TestFlowRepository_NetFlowByYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewFlowRepository(db)
	ctx := context.Background()

	seedFlow(t, repo, domain.FlowJoiners, 2023, 3100)
	seedFlow(t, repo, domain.FlowLeavers, 2023, 2400)
	seedFlow(t, repo, domain.FlowJoiners, 2024, 3200)
	// 2024 has no leavers record, so it is excluded from the net series

	net, err := repo.NetFlowByYear(ctx, domain.ProfessionPharmacist)
	require.NoError(t, err)

	require.Len(t, net, 1)
	assert.Equal(t, 700, net[2023])
}
