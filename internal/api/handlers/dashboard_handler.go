package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/application/services"
)

// DashboardHandler serves the derived dashboard document
type DashboardHandler struct {
	dashboard *services.DashboardService
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// GetSnapshot handles GET /api/dashboard
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboard.Snapshot(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build dashboard snapshot")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// Reload handles POST /api/dashboard/reload
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.Reload(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Failed to reload facility dataset")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "reloaded",
		"facilities": len(h.dashboard.Facilities()),
		"loaded_at":  h.dashboard.LoadedAt(),
	})
}
