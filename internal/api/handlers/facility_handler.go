package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/application/services"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
)

// FacilityHandler handles facility-related HTTP requests
type FacilityHandler struct {
	dashboard  *services.DashboardService
	searchRepo repositories.FacilitySearchRepository
	logger     zerolog.Logger
}

// NewFacilityHandler creates a new facility handler. searchRepo may be nil
// when no search engine is configured.
func NewFacilityHandler(dashboard *services.DashboardService, searchRepo repositories.FacilitySearchRepository, logger zerolog.Logger) *FacilityHandler {
	return &FacilityHandler{
		dashboard:  dashboard,
		searchRepo: searchRepo,
		logger:     logger,
	}
}

// ListFacilities handles GET /api/facilities
func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	filter := services.FacilityFilter{
		Region: r.URL.Query().Get("region"),
	}
	if caps := r.URL.Query().Get("caps"); caps != "" {
		for _, cap := range strings.Split(caps, ",") {
			if cap = strings.TrimSpace(cap); cap != "" {
				filter.RequiredCaps = append(filter.RequiredCaps, cap)
			}
		}
	}

	facilities := h.dashboard.ListFacilities(filter)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": facilities,
		"count":      len(facilities),
	})
}

// GetFacility handles GET /api/facilities/{id}
func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	facilityID := r.PathValue("id")
	if facilityID == "" {
		respondWithError(w, http.StatusBadRequest, "facility ID is required")
		return
	}

	facility, err := h.dashboard.GetFacility(facilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, facility)
}

// SearchFacilities handles GET /api/facilities/search. Without a search
// engine it falls back to an in-memory substring match.
func (h *FacilityHandler) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	params := repositories.SearchParams{
		Query:  r.URL.Query().Get("q"),
		Region: r.URL.Query().Get("region"),
		Limit:  20,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		params.Limit = limit
	}

	var hits []repositories.SearchHit
	if h.searchRepo != nil {
		var err error
		hits, err = h.searchRepo.Search(r.Context(), params)
		if err != nil {
			h.logger.Error().Err(err).Str("query", params.Query).Msg("Facility search failed")
			respondWithError(w, http.StatusBadGateway, "failed to search facilities")
			return
		}
	} else {
		hits = h.dashboard.SearchFacilities(params)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": hits,
		"count":      len(hits),
	})
}
