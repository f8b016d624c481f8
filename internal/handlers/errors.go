package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carpool/internal/service"
	"carpool/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// respondServiceError maps service-layer errors onto HTTP statuses.
// Validation failures carry their message to the client; anything
// unexpected gets logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, logMsg string, err error) {
	var vErr validation.Error
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrEntryNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, service.ErrRatesNotSet):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionInvalid):
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
