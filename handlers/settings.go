package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nickdiaz444/pickleball-open-play2/models"
)

// GetSettings returns the current session limits.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.Settings())
}

// UpdateSettings stores new session limits. Shrinking the court count drops
// the highest-numbered courts, so games in progress there are lost.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.engine.UpdateSettings(settings); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}
