package handlers

import (
	"net/http"
	"strings"

	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
)

// GeolocationHandler handles geolocation endpoints
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?place=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	place := strings.TrimSpace(r.URL.Query().Get("place"))
	if place == "" {
		respondWithError(w, http.StatusBadRequest, "place parameter is required")
		return
	}

	loc, err := h.provider.Geocode(r.Context(), place)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Str("place", place).Msg("geocode failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"place": place,
		"lat":   loc.Latitude,
		"lng":   loc.Longitude,
	})
}
