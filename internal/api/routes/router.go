package routes

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/korlebu/facilitypulse/internal/api/handlers"
	"github.com/korlebu/facilitypulse/internal/api/middleware"
	"github.com/korlebu/facilitypulse/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dashboardHandler *handlers.DashboardHandler
	facilityHandler  *handlers.FacilityHandler
	assistantHandler *handlers.AssistantHandler

	metrics *observability.Metrics
	logger  zerolog.Logger
}

// NewRouter creates a new router
func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	facilityHandler *handlers.FacilityHandler,
	assistantHandler *handlers.AssistantHandler,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		dashboardHandler: dashboardHandler,
		facilityHandler:  facilityHandler,
		assistantHandler: assistantHandler,

		metrics: metrics,
		logger:  logger,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Dashboard endpoints
	r.mux.HandleFunc("GET /api/dashboard", r.dashboardHandler.GetSnapshot)
	r.mux.HandleFunc("POST /api/dashboard/reload", r.dashboardHandler.Reload)

	// Facility endpoints
	r.mux.HandleFunc("GET /api/facilities", r.facilityHandler.ListFacilities)
	r.mux.HandleFunc("GET /api/facilities/search", r.facilityHandler.SearchFacilities)
	r.mux.HandleFunc("GET /api/facilities/{id}", r.facilityHandler.GetFacility)

	// Assistant endpoint
	r.mux.HandleFunc("POST /api/assistant/recommend", r.assistantHandler.Ask)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(r.logger)(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on errors
	handler = middleware.CORSMiddleware(handler)

	return handler
}
