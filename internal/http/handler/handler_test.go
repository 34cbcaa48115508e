package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pharmacast/workforce-api/internal/config"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/http/handler"
	"github.com/pharmacast/workforce-api/internal/repository"
	"github.com/pharmacast/workforce-api/internal/service"
	"github.com/pharmacast/workforce-api/internal/storage"
	"github.com/pharmacast/workforce-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, db *gorm.DB) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	projCfg := &config.ProjectionConfig{
		BaselineYear:       2025,
		BaselineMonth:      3,
		StartYear:          2025,
		Horizon:            10,
		OpsGrowthRatePct:   0.1,
		OpsBaselineFTE:     18009,
		CPWSPharmacistsFTE: 18926.58922,
		CPWSTechniciansFTE: 4290.735455,
		DefaultSource:      "cpws",
	}

	snapshotRepo := repository.NewSnapshotRepository(db)
	projectionRepo := repository.NewProjectionRepository(db)

	projectionSvc := service.NewProjectionService(snapshotRepo, projectionRepo, nil, projCfg, "England", logger)
	snapshotSvc := service.NewSnapshotService(snapshotRepo, "England", logger)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	artifactSvc := service.NewArtifactService(projectionSvc, store, logger)

	projectionHandler := handler.NewProjectionHandler(projectionSvc, artifactSvc, logger)
	snapshotHandler := handler.NewSnapshotHandler(snapshotSvc, logger)

	r := chi.NewRouter()
	r.Get("/api/v1/projections", projectionHandler.Get)
	r.Get("/api/v1/projections/chart", projectionHandler.Chart)
	r.Get("/api/v1/growth-rates", projectionHandler.GrowthRates)
	r.Get("/api/v1/snapshots", snapshotHandler.List)
	r.Post("/api/v1/snapshots", snapshotHandler.Create)
	return r
}

func seedHandlerHistory(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2018, 54128)
	testutil.SeedSnapshot(t, db, domain.ProfessionPharmacist, 2025, 63297)
	testutil.SeedSnapshot(t, db, domain.ProfessionTechnician, 2018, 23466)
	testutil.SeedSnapshot(t, db, domain.ProfessionTechnician, 2025, 25729)
}

func TestGetProjections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections?scenario=baseline", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var table domain.ProjectionTableDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))

	assert.Equal(t, "baseline", table.Scenario)
	assert.Equal(t, 10, table.Horizon)
	require.Len(t, table.Rows, 11)
	assert.Equal(t, "2025/26", table.Rows[0].FinancialYear)
	assert.Equal(t, table.Rows[0].Supply-table.Rows[0].Ops, table.Rows[0].Gap)
}

func TestGetProjections_DefaultScenarioIsBaseline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var table domain.ProjectionTableDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, "baseline", table.Scenario)
}

func TestGetProjections_UnknownScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections?scenario=catastrophic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestGetProjections_NoHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetProjectionChart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections/chart?scenario=optimistic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestGetGrowthRates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/growth-rates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rates []domain.GrowthRateDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rates))
	require.Len(t, rates, 2)
	assert.Equal(t, "Pharmacist", rates[0].Profession)
	assert.InDelta(t, 2.26, rates[0].RatePct, 0.01)
}

func TestListSnapshots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/snapshots?profession=Pharmacist&month=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshots []domain.SnapshotDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshots))
	require.Len(t, snapshots, 2)
	assert.Equal(t, 2018, snapshots[0].Year)
}

func TestListSnapshots_InvalidProfession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/snapshots?profession=Dentist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	body := `{"profession":"Pharmacist","year":2026,"month":3,"headcount":64500}`
	req := httptest.NewRequest("POST", "/api/v1/snapshots", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto domain.SnapshotDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "England", dto.Country) // default country applied
	assert.Equal(t, 64500, dto.Headcount)

	// Duplicate observation conflicts
	req = httptest.NewRequest("POST", "/api/v1/snapshots", strings.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateSnapshot_ValidationErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	body := `{"profession":"Dentist","year":2026,"month":13,"headcount":-5}`
	req := httptest.NewRequest("POST", "/api/v1/snapshots", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.NotEmpty(t, apiErr.Errors)
}

func TestGetProjections_CustomHorizon(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedHandlerHistory(t, db)
	router := newTestRouter(t, db)

	req := httptest.NewRequest("GET", "/api/v1/projections?horizon=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var table domain.ProjectionTableDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, 3, table.Horizon)
	assert.Len(t, table.Rows, 4)

	req = httptest.NewRequest("GET", "/api/v1/projections?horizon=abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
