package internal

import (
	"encoding/json"
	"net/http"

	"labtrack-api/internal/models"
	"labtrack-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := store.ListLocations(r.Context(), s.DB)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.LocationsResponse{Locations: locations})
}

// getLocation answers 200 with a JSON null body for unknown ids. Lookups
// here are existence probes rather than resource fetches, so absence is
// not an error.
func (s *Server) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location id", "VALIDATION_ERROR")
		return
	}

	loc, err := store.GetLocation(r.Context(), s.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) createLocation(w http.ResponseWriter, r *http.Request) {
	var in models.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	loc := in.Location()
	if err := store.CreateLocation(r.Context(), s.DB, &loc); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}
