package routes

import (
	"net/http"

	"github.com/medigate/clinic-navigator/internal/api/handlers"
	"github.com/medigate/clinic-navigator/internal/api/middleware"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	clinicSearchHandler *handlers.ClinicSearchHandler
	triageHandler       *handlers.TriageHandler
	specialistHandler   *handlers.SpecialistHandler
	geolocationHandler  *handlers.GeolocationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	clinicSearchHandler *handlers.ClinicSearchHandler,
	triageHandler *handlers.TriageHandler,
	specialistHandler *handlers.SpecialistHandler,
	geolocationHandler *handlers.GeolocationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		clinicSearchHandler: clinicSearchHandler,
		triageHandler:       triageHandler,
		specialistHandler:   specialistHandler,
		geolocationHandler:  geolocationHandler,

		metrics: metrics,
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

	// Clinic search endpoints
	r.mux.HandleFunc("GET /api/clinics/search", r.clinicSearchHandler.Search)

	// Triage endpoints
	r.mux.HandleFunc("POST /api/triage/followups", r.triageHandler.Followups)
	r.mux.HandleFunc("POST /api/triage/recommendation", r.triageHandler.Recommendation)
	r.mux.HandleFunc("POST /api/triage/notes", r.triageHandler.Notes)

	// Specialist lookup endpoint
	r.mux.HandleFunc("POST /api/specialists/lookup", r.specialistHandler.Lookup)

	// Geolocation endpoint
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
