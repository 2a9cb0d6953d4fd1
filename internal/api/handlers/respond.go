package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quillpad/quillpad-be/internal/services"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error and gets logged.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotYetLiked),
		errors.Is(err, services.ErrEmailTaken):
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, services.ErrConflict):
		respondJSON(w, http.StatusConflict, map[string]string{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
	}
}
