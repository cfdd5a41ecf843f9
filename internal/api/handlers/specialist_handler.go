package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
)

// SpecialistHandler handles specialist lookup endpoints
type SpecialistHandler struct {
	specialist *services.SpecialistService
}

// NewSpecialistHandler creates a new specialist handler
func NewSpecialistHandler(specialist *services.SpecialistService) *SpecialistHandler {
	return &SpecialistHandler{specialist: specialist}
}

type specialistRequest struct {
	ClinicName  string `json:"clinic_name"`
	ClinicURL   string `json:"clinic_url"`
	Departments string `json:"departments"`
}

// Lookup handles POST /api/specialists/lookup
func (h *SpecialistHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req specialistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.specialist.Lookup(r.Context(), req.ClinicName, req.ClinicURL, req.Departments)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("specialist lookup failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
