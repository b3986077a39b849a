package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/application/services"
)

// AssistantHandler handles clinical triage queries
type AssistantHandler struct {
	assistant *services.AssistantService
	logger    zerolog.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *services.AssistantService, logger zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		logger:    logger,
	}
}

type assistantRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /api/assistant/recommend
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.assistant.Ask(r.Context(), req.Query)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Assistant query failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reply)
}
