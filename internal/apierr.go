package internal

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"labtrack-api/internal/store"
)

// ErrorResponse is the JSON body sent for every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// storeError maps store sentinel errors onto API responses. Anything
// unrecognized becomes a 500 with the details kept out of the body.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusBadRequest, err.Error(), "CONFLICT")
	case errors.Is(err, store.ErrSameLocation):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_OPERATION")
	default:
		log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL")
	}
}
