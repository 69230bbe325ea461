package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// defaultHistoryLimit is how many recent games the history endpoint returns
// when the caller does not ask for a specific count.
const defaultHistoryLimit = 10

// ResultRequest names the winning side of a finished game.
type ResultRequest struct {
	WinningTeam int `json:"winning_team"`
}

// SubmitResult settles the game on one court and reseeds it.
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	idxStr := chi.URLParam(r, "index")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		http.Error(w, "Invalid court index", http.StatusBadRequest)
		return
	}

	var req ResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.engine.SubmitResult(idx, req.WinningTeam); err != nil {
		writeError(w, err)
		return
	}

	h.broadcastState()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.View())
}

// GetHistory returns recent finished games, newest first. The optional
// ?limit=N query caps the count; -1 asks for everything.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.engine.History(limit))
}
