package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/domain/entities"
	"github.com/medigate/clinic-navigator/internal/domain/providers"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
	"github.com/medigate/clinic-navigator/pkg/config"
)

// defaultNameExcludes filters out home-visit style providers that are not
// walk-in destinations.
var defaultNameExcludes = []string{"在宅", "訪問", "ホームケア"}

// ClinicSearchHandler handles clinic search endpoints
type ClinicSearchHandler struct {
	search      *services.ClinicSearchService
	geolocation providers.GeolocationProvider
	defaults    config.SearchConfig
}

// NewClinicSearchHandler creates a new clinic search handler
func NewClinicSearchHandler(search *services.ClinicSearchService, geolocation providers.GeolocationProvider, defaults config.SearchConfig) *ClinicSearchHandler {
	return &ClinicSearchHandler{
		search:      search,
		geolocation: geolocation,
		defaults:    defaults,
	}
}

// Search handles GET /api/clinics/search
func (h *ClinicSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerFromContext(r.Context())

	origin, ok := h.resolveOrigin(w, r)
	if !ok {
		return
	}

	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	results, err := h.search.Search(r.Context(), origin, query)
	if err != nil {
		logger.Error().Err(err).Msg("clinic search failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"origin":  origin,
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// resolveOrigin reads lat/lng, falling back to a place name resolved through
// the geolocation provider.
func (h *ClinicSearchHandler) resolveOrigin(w http.ResponseWriter, r *http.Request) (entities.Location, bool) {
	latStr := strings.TrimSpace(r.URL.Query().Get("lat"))
	lngStr := strings.TrimSpace(r.URL.Query().Get("lng"))

	if latStr != "" || lngStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
			return entities.Location{}, false
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid lng parameter")
			return entities.Location{}, false
		}
		return entities.Location{Latitude: lat, Longitude: lng}, true
	}

	place := strings.TrimSpace(r.URL.Query().Get("place"))
	if place == "" {
		respondWithError(w, http.StatusBadRequest, "lat and lng (or place) parameters are required")
		return entities.Location{}, false
	}

	loc, err := h.geolocation.Geocode(r.Context(), place)
	if err != nil {
		respondWithAppError(w, err)
		return entities.Location{}, false
	}
	return *loc, true
}

func (h *ClinicSearchHandler) parseQuery(w http.ResponseWriter, r *http.Request) (entities.SearchQuery, bool) {
	q := entities.SearchQuery{
		RadiusKm:              h.defaults.DefaultRadiusKm,
		SoonCloseThresholdMin: h.defaults.SoonCloseThresholdMin,
		SoonStartThresholdMin: h.defaults.SoonStartThresholdMin,
		Limit:                 h.defaults.DefaultLimit,
	}

	params := r.URL.Query()

	if v := strings.TrimSpace(params.Get("radius_km")); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid radius_km parameter")
			return q, false
		}
		q.RadiusKm = radius
	}

	q.DepartmentKeywords = splitKeywords(params.Get("departments"))

	if _, present := params["exclude_departments"]; present {
		q.ExcludeDepartmentKeywords = splitKeywords(params.Get("exclude_departments"))
	} else {
		q.ExcludeDepartmentKeywords = services.BuildExcludeDepartments(q.DepartmentKeywords)
	}

	if _, present := params["exclude_names"]; present {
		q.ExcludeNameKeywords = splitKeywords(params.Get("exclude_names"))
	} else {
		q.ExcludeNameKeywords = defaultNameExcludes
	}

	if v := strings.TrimSpace(params.Get("only_open")); v != "" {
		onlyOpen, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid only_open parameter")
			return q, false
		}
		q.OnlyAcceptingNow = onlyOpen
	}

	if v := strings.TrimSpace(params.Get("soon_close_min")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid soon_close_min parameter")
			return q, false
		}
		q.SoonCloseThresholdMin = n
	}

	if v := strings.TrimSpace(params.Get("soon_start_min")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid soon_start_min parameter")
			return q, false
		}
		q.SoonStartThresholdMin = n
	}

	if v := strings.TrimSpace(params.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid limit parameter")
			return q, false
		}
		q.Limit = n
	}

	return q, true
}

// splitKeywords splits a comma separated parameter, dropping empty entries
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
