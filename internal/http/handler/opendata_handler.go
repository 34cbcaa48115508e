package handler

import (
	"net/http"

	"github.com/pharmacast/workforce-api/internal/opendata"
	"go.uber.org/zap"
)

// OpenDataHandler exposes NHSBSA Open Data Portal lookups.
type OpenDataHandler struct {
	client *opendata.Client
	logger *zap.Logger
}

func NewOpenDataHandler(client *opendata.Client, logger *zap.Logger) *OpenDataHandler {
	return &OpenDataHandler{
		client: client,
		logger: logger,
	}
}

// @Summary Community pharmacy premises count
// @Description Returns the number of community pharmacy premises from the
// @Description latest Consolidated Pharmaceutical List quarter, for context
// @Description alongside the workforce projections.
// @Tags OpenData
// @Produce json
// @Success 200 {object} opendata.PharmacyList
// @Failure 502 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Router /pharmacies [get]
func (h *OpenDataHandler) PharmacyList(w http.ResponseWriter, r *http.Request) {
	if !h.client.IsEnabled() {
		respondWithError(w, http.StatusServiceUnavailable, "open data integration is not enabled")
		return
	}

	list, err := h.client.FetchPharmacyList(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch pharmacy list", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "failed to fetch pharmacy list")
		return
	}

	respondJSON(w, http.StatusOK, list)
}
