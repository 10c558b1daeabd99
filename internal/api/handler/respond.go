package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/checksinmyhead/api/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// mapError translates domain sentinel errors to HTTP status codes.
// Only the sentinel message is exposed; driver details stay in the logs.
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnreachable):
		respondError(w, http.StatusServiceUnavailable, domain.ErrUnreachable.Error())
	case errors.Is(err, domain.ErrAuthFailed):
		respondError(w, http.StatusBadGateway, domain.ErrAuthFailed.Error())
	case errors.Is(err, domain.ErrConfigMissing):
		respondError(w, http.StatusInternalServerError, domain.ErrConfigMissing.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
