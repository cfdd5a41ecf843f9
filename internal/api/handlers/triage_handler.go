package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
)

// TriageHandler handles symptom triage endpoints
type TriageHandler struct {
	triage *services.TriageService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(triage *services.TriageService) *TriageHandler {
	return &TriageHandler{triage: triage}
}

type followupRequest struct {
	Symptom string `json:"symptom"`
}

type recommendationRequest struct {
	Symptom           string `json:"symptom"`
	AdditionalAnswers string `json:"additional_answers"`
}

// Followups handles POST /api/triage/followups
func (h *TriageHandler) Followups(w http.ResponseWriter, r *http.Request) {
	var req followupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	questions, err := h.triage.FollowupQuestions(r.Context(), req.Symptom)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("followup generation failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"questions": questions,
	})
}

// Recommendation handles POST /api/triage/recommendation
func (h *TriageHandler) Recommendation(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recommendation, disclaimer, err := h.triage.DepartmentRecommendation(r.Context(), req.Symptom, req.AdditionalAnswers)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("recommendation generation failed")
		respondWithAppError(w, err)
		return
	}

	keywords := services.GuessDepartmentKeywords(recommendation)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendation":      recommendation,
		"disclaimer":          disclaimer,
		"department_keywords": keywords,
	})
}

// Notes handles POST /api/triage/notes
func (h *TriageHandler) Notes(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	notes, err := h.triage.PQRSTNotes(r.Context(), req.Symptom, req.AdditionalAnswers)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("notes generation failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"notes": notes,
	})
}
