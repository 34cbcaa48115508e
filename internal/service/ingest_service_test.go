package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/service"
	"github.com/pharmacast/workforce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newIngestService(t *testing.T, db *gorm.DB, dataDir string) *service.IngestService {
	t.Helper()
	return service.NewIngestService(
		repository.NewSnapshotRepository(db),
		repository.NewFlowRepository(db),
		repository.NewImportRepository(db),
		&config.IngestConfig{
			DataDir:         dataDir,
			RegistrantsFile: "registrants.csv",
			JoinersFile:     "joiners.csv",
			LeaversFile:     "leavers.csv",
			Country:         "England",
		},
		3,
		zap.NewNop(),
	)
}

func TestIngestService_ImportDatasets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dir := t.TempDir()

	writeDataset(t, dir, "registrants.csv", `profession,country,year,month,registrants
Pharmacist,England,2018,3,"54,128"
Pharmacist,England,2025,3,"63,297"
Pharmacist,Wales,2025,3,2600
Pharmacy Technician,England,2025,3,25729
`)
	writeDataset(t, dir, "joiners.csv", `profession,year,joiners
Pharmacist,2024,3100
`)
	writeDataset(t, dir, "leavers.csv", `profession,year,leavers
Pharmacist,2024,2400
`)

	svc := newIngestService(t, db, dir)

	result, err := svc.ImportDatasets(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Batches, 3)

	snapshots := result.Batches[0]
	assert.Equal(t, "snapshots", snapshots.Kind)
	assert.Equal(t, string(domain.ImportStatusCompleted), snapshots.Status)
	assert.Equal(t, 3, snapshots.RowsImported)
	assert.Equal(t, 1, snapshots.RowsSkipped)

	// Imported snapshots feed the repository
	snap, err := repository.NewSnapshotRepository(db).GetByYear(
		context.Background(), domain.ProfessionPharmacist, "England", 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 63297, snap.Headcount)
}

func TestIngestService_ImportDatasets_Rerunnable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dir := t.TempDir()

	writeDataset(t, dir, "registrants.csv", `profession,country,year,month,registrants
Pharmacist,England,2025,3,63297
`)

	svc := newIngestService(t, db, dir)
	ctx := context.Background()

	_, err := svc.ImportDatasets(ctx, []string{service.DatasetSnapshots})
	require.NoError(t, err)
	_, err = svc.ImportDatasets(ctx, []string{service.DatasetSnapshots})
	require.NoError(t, err)

	count, err := repository.NewSnapshotRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestService_ImportDatasets_MissingFileRecordedAsFailed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newIngestService(t, db, t.TempDir())

	result, err := svc.ImportDatasets(context.Background(), []string{service.DatasetJoiners})
	require.NoError(t, err)
	require.Len(t, result.Batches, 1)

	assert.Equal(t, string(domain.ImportStatusFailed), result.Batches[0].Status)
	assert.NotEmpty(t, result.Batches[0].Error)

	// Failed batches are still recorded for auditing
	batches, total, err := svc.ListBatches(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, batches, 1)
}

func TestIngestService_ImportDatasets_UnknownKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newIngestService(t, db, t.TempDir())

	_, err := svc.ImportDatasets(context.Background(), []string{"prescriptions"})
	assert.ErrorIs(t, err, service.ErrUnknownImportKind)
}
