package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nickdiaz444/pickleball-open-play2/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are handled by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades the connection and starts streaming board
// snapshots to it.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := hub.NewClient(uuid.New().String(), conn, h.hub)

	// Seed the viewer with the current board instead of making it wait for
	// the next change. Queued before Register: once the read pump is live, a
	// connection that dies immediately unregisters the client and closes its
	// channel.
	c.TrySend(hub.Message{
		Type:      hub.MessageTypeState,
		Payload:   h.engine.View(),
		Timestamp: time.Now().UTC(),
	})

	h.hub.Register(c)
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}
