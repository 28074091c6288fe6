package internal

import (
	"encoding/json"
	"net/http"

	"labtrack-api/internal/auth"
	"labtrack-api/internal/models"
	"labtrack-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// LIST with pagination
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	allowedSort := map[string]string{
		"title":  "title",
		"type":   "type",
		"status": "status",
	}

	items, count, err := store.ListItems(r.Context(), s.DB, store.ListOptions{
		Skip:    params.skip,
		Limit:   params.limit,
		OrderBy: buildOrderBy(params.sort, allowedSort),
	})
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ItemsResponse{Data: items, Count: count})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}

	it, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var in models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	item := in.Item()
	operatorID := auth.UserIDFromContext(r.Context())
	if err := store.CreateItem(r.Context(), s.DB, &item, operatorID); err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}

	var in models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	// Existence first so a missing item reads as 404 even for callers
	// without write permission.
	if _, err := store.GetItem(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || !claims.Superuser {
		writeError(w, http.StatusBadRequest, "not enough permissions", "PERMISSION_DENIED")
		return
	}

	out, err := store.UpdateItem(r.Context(), s.DB, id, &in)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}

	if _, err := store.GetItem(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || !claims.Superuser {
		writeError(w, http.StatusBadRequest, "not enough permissions", "PERMISSION_DENIED")
		return
	}

	if err := store.DeleteItem(r.Context(), s.DB, id); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Message{Message: "item deleted successfully"})
}

// moveItem relocates an item and appends an audit log in one transaction.
func (s *Server) moveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}
	locationID, err := uuid.Parse(chi.URLParam(r, "locationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location id", "VALIDATION_ERROR")
		return
	}

	operatorID := auth.UserIDFromContext(r.Context())
	loc, err := store.MoveItem(r.Context(), s.DB, itemID, locationID, operatorID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) listItemLogs(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}

	logs, err := store.ListItemLogs(r.Context(), s.DB, itemID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ItemLogsResponse{ItemID: itemID, Data: logs, Count: len(logs)})
}

func (s *Server) createItemLog(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id", "VALIDATION_ERROR")
		return
	}

	var in models.CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "VALIDATION_ERROR")
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	operatorID := auth.UserIDFromContext(r.Context())
	entry, err := store.CreateItemLog(r.Context(), s.DB, itemID, in.Message, in.Date, operatorID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
