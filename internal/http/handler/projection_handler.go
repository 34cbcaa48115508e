package handler

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/service"
	"go.uber.org/zap"
)

type ProjectionHandler struct {
	projectionService *service.ProjectionService
	artifactService   *service.ArtifactService
	logger            *zap.Logger
}

func NewProjectionHandler(
	projectionService *service.ProjectionService,
	artifactService *service.ArtifactService,
	logger *zap.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
		artifactService:   artifactService,
		logger:            logger,
	}
}

func parseSource(r *http.Request) (domain.BaselineSource, bool) {
	switch r.URL.Query().Get("source") {
	case "":
		return "", true
	case "cpws":
		return domain.BaselineSourceCPWS, true
	case "gphc":
		return domain.BaselineSourceGPhC, true
	default:
		return "", false
	}
}

// @Summary Get workforce gap projection
// @Description Returns the supply/demand gap table for one scenario. The table
// @Description covers the baseline year plus each projected year, with supply,
// @Description operations demand and the gap between them in whole FTE.
// @Tags Projections
// @Produce json
// @Param scenario query string false "Scenario: baseline, optimistic or pessimistic" default(baseline)
// @Param source query string false "Baseline source: cpws or gphc" default(cpws)
// @Param refresh query bool false "Force recomputation instead of serving the stored run"
// @Param horizon query int false "Custom projection horizon in years (1-50); computed on the fly, not stored"
// @Success 200 {object} domain.ProjectionTableDTO
// @Failure 400 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Router /projections [get]
func (h *ProjectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	source, ok := parseSource(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "source must be cpws or gphc")
		return
	}

	scenario := r.URL.Query().Get("scenario")

	if hz := r.URL.Query().Get("horizon"); hz != "" {
		horizon, err := strconv.Atoi(hz)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "horizon must be an integer")
			return
		}
		table, err := h.projectionService.Preview(r.Context(), scenario, source, horizon)
		if err != nil {
			h.respondProjectionError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, table)
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"

	table, err := h.projectionService.GetTable(r.Context(), scenario, source, refresh)
	if err != nil {
		h.respondProjectionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, table)
}

// @Summary Get historical growth rates
// @Description Returns the compound annual growth rate per profession, derived
// @Description from the earliest and latest annual registration snapshots.
// @Tags Projections
// @Produce json
// @Success 200 {array} domain.GrowthRateDTO
// @Failure 422 {object} domain.APIError
// @Router /growth-rates [get]
func (h *ProjectionHandler) GrowthRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.projectionService.GrowthRates(r.Context())
	if err != nil {
		h.respondProjectionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rates)
}

// @Summary Get projection chart
// @Description Renders the gap chart for one scenario and returns it as PNG.
// @Tags Projections
// @Produce png
// @Param scenario query string false "Scenario: baseline, optimistic or pessimistic" default(baseline)
// @Param source query string false "Baseline source: cpws or gphc" default(cpws)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Router /projections/chart [get]
func (h *ProjectionHandler) Chart(w http.ResponseWriter, r *http.Request) {
	source, ok := parseSource(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "source must be cpws or gphc")
		return
	}

	key, err := h.artifactService.RenderChart(r.Context(), r.URL.Query().Get("scenario"), source)
	if err != nil {
		h.respondProjectionError(w, err)
		return
	}

	h.streamArtifact(w, r, key, service.ContentTypePNG)
}

// @Summary Export projections as a workbook
// @Description Renders every scenario plus the growth-rate summary into an
// @Description xlsx workbook and returns it.
// @Tags Projections
// @Produce octet-stream
// @Param source query string false "Baseline source: cpws or gphc" default(cpws)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Router /projections/export [get]
func (h *ProjectionHandler) Export(w http.ResponseWriter, r *http.Request) {
	source, ok := parseSource(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "source must be cpws or gphc")
		return
	}

	key, err := h.artifactService.RenderWorkbook(r.Context(), source)
	if err != nil {
		h.respondProjectionError(w, err)
		return
	}

	h.streamArtifact(w, r, key, service.ContentTypeXLSX)
}

func (h *ProjectionHandler) streamArtifact(w http.ResponseWriter, r *http.Request, key, contentType string) {
	reader, err := h.artifactService.Open(r.Context(), key)
	if err != nil {
		h.logger.Error("failed to open artifact", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to open artifact")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream artifact", zap.String("key", key), zap.Error(err))
	}
}

func (h *ProjectionHandler) respondProjectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientHistory):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("projection request failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to compute projection")
	}
}
