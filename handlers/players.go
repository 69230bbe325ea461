package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// AddPlayerRequest is the payload for registering a player.
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// GetPlayers returns the registered roster.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.Snapshot().Players)
}

// AddPlayer registers a player and puts them at the back of the queue.
// Re-submitting a name that is already registered is a harmless no-op.
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.engine.AddPlayer(strings.TrimSpace(req.Name)); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}
