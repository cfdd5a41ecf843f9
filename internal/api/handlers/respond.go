package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medigate/clinic-navigator/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps application error types to HTTP status codes
func respondWithAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsType(err, errors.ErrorTypeNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.IsType(err, errors.ErrorTypeValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.IsType(err, errors.ErrorTypeExternal):
		respondWithError(w, http.StatusBadGateway, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
