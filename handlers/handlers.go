// Package handlers exposes the rotation engine over HTTP and feeds the live
// board to WebSocket viewers.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/nickdiaz444/pickleball-open-play2/hub"
	"github.com/nickdiaz444/pickleball-open-play2/rotation"
)

// Handler carries the engine and the hub behind the HTTP routes.
type Handler struct {
	engine *rotation.Engine
	hub    *hub.Hub
	ctx    context.Context
}

// New builds the handler set. ctx bounds the lifetime of WebSocket pumps.
func New(ctx context.Context, engine *rotation.Engine, h *hub.Hub) *Handler {
	return &Handler{engine: engine, hub: h, ctx: ctx}
}

// writeError maps engine errors onto HTTP status codes. Domain rule
// violations are the caller's fault; anything else is a persistence problem.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rotation.ErrCourtOutOfRange):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, rotation.ErrCapacityExceeded),
		errors.Is(err, rotation.ErrEmptyRoster),
		errors.Is(err, rotation.ErrInsufficientPlayers),
		errors.Is(err, rotation.ErrInvalidTeam),
		errors.Is(err, rotation.ErrInvalidSettings):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// broadcastState pushes the current board to every connected viewer.
func (h *Handler) broadcastState() {
	if h.hub != nil {
		h.hub.Broadcast(h.engine.View())
	}
}
