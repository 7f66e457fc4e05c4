package handler

import (
	"net/http"
	"strconv"
)

// itemIDFromQuery reads and checks the id query parameter
func itemIDFromQuery(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "id query parameter is required")
		return 0, false
	}

	itemID, err := strconv.Atoi(raw)
	if err != nil || itemID < 1 {
		respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return itemID, true
}
