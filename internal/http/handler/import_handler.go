package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/service"
	"go.uber.org/zap"
)

type ImportHandler struct {
	ingestService *service.IngestService
	logger        *zap.Logger
}

func NewImportHandler(ingestService *service.IngestService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		ingestService: ingestService,
		logger:        logger,
	}
}

// @Summary Import registration datasets
// @Description Ingests the configured registration CSVs (snapshots, joiners,
// @Description leavers) into the database. Re-running replaces existing
// @Description observations rather than duplicating them.
// @Tags Imports
// @Accept json
// @Produce json
// @Param request body domain.ImportRequest false "Datasets to import; empty imports all"
// @Success 200 {object} domain.ImportResultDTO
// @Failure 400 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /imports [post]
func (h *ImportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.ingestService.ImportDatasets(r.Context(), req.Datasets)
	if err != nil {
		if errors.Is(err, service.ErrUnknownImportKind) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("import failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "import failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Get import batch
// @Description Returns one past import batch by ID.
// @Tags Imports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} domain.ImportBatchDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /imports/{id} [get]
func (h *ImportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid batch ID")
		return
	}

	batch, err := h.ingestService.GetBatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "import batch not found")
			return
		}
		h.logger.Error("failed to load import batch", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load import batch")
		return
	}

	respondJSON(w, http.StatusOK, batch)
}

// @Summary List import batches
// @Description Returns past import batches, newest first.
// @Tags Imports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {array} domain.ImportBatchDTO
// @Security ApiKeyAuth
// @Router /imports [get]
func (h *ImportHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	batches, total, err := h.ingestService.ListBatches(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list import batches", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list import batches")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"batches": batches,
		"total":   total,
		"page":    page,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}
