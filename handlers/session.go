package handlers

import (
	"encoding/json"
	"net/http"
)

// GetState returns the full live board: roster, queue, courts, streaks and
// settings.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}

// ShuffleQueue rebuilds the queue as a random permutation of the roster and
// clears the board.
func (h *Handler) ShuffleQueue(w http.ResponseWriter, r *http.Request) {
	if _, err := h.engine.ShuffleQueue(); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}

// AssignCourts seats waiting players on the board four at a time.
func (h *Handler) AssignCourts(w http.ResponseWriter, r *http.Request) {
	if _, err := h.engine.AssignCourts(); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}

// ResetAll wipes the session back to empty. Settings survive.
func (h *Handler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if _, err := h.engine.Reset(); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}
