package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pharmacast/workforce-api/internal/domain"
	"github.com/pharmacast/workforce-api/internal/service"
	"go.uber.org/zap"
)

type SnapshotHandler struct {
	snapshotService *service.SnapshotService
	logger          *zap.Logger
}

func NewSnapshotHandler(snapshotService *service.SnapshotService, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
		logger:          logger,
	}
}

// @Summary List registration snapshots
// @Description Returns historical registration observations for one profession,
// @Description ordered by year. Month 3 (March) holds the annual snapshots.
// @Tags Snapshots
// @Produce json
// @Param profession query string true "Profession: Pharmacist or Pharmacy Technician"
// @Param month query int false "Restrict to one observation month (1-12)"
// @Success 200 {array} domain.SnapshotDTO
// @Failure 400 {object} domain.APIError
// @Router /snapshots [get]
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	profession := domain.Profession(r.URL.Query().Get("profession"))
	if profession != domain.ProfessionPharmacist && profession != domain.ProfessionTechnician {
		respondWithError(w, http.StatusBadRequest, "profession must be Pharmacist or Pharmacy Technician")
		return
	}

	month := 0
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			respondWithError(w, http.StatusBadRequest, "month must be between 1 and 12")
			return
		}
		month = parsed
	}

	snapshots, err := h.snapshotService.List(r.Context(), profession, month)
	if err != nil {
		h.logger.Error("failed to list snapshots", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}

	respondJSON(w, http.StatusOK, snapshots)
}

// @Summary Create registration snapshot
// @Description Stores a new registration observation. Duplicate observations
// @Description for the same profession, year and month are rejected.
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param snapshot body domain.CreateSnapshotRequest true "Observation"
// @Success 201 {object} domain.SnapshotDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /snapshots [post]
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.snapshotService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("failed to create snapshot", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create snapshot")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// @Summary Delete registration snapshot
// @Tags Snapshots
// @Param id path string true "Snapshot ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security ApiKeyAuth
// @Router /snapshots/{id} [delete]
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid snapshot ID")
		return
	}

	if err := h.snapshotService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		h.logger.Error("failed to delete snapshot", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to delete snapshot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
