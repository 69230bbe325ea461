package handlers

import (
	"encoding/json"
	"net/http"
)

// HandleHealth reports liveness plus a few board gauges.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	viewers := 0
	if h.hub != nil {
		viewers = h.hub.ClientCount()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":         "healthy",
		"service":        "pickleball-open-play",
		"players":        len(snap.Players),
		"waiting":        len(snap.Queue),
		"games_played":   len(snap.History),
		"active_viewers": viewers,
	})
}
