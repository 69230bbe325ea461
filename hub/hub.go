// Package hub fans the live board out to connected WebSocket viewers. Every
// mutation pushes a fresh snapshot; viewers never send anything back except
// pings.
package hub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nickdiaz444/pickleball-open-play2/models"
)

// MessageTypeState marks a full-board snapshot message.
const MessageTypeState = "state"

// Message is the envelope pushed to every connected viewer.
type Message struct {
	Type      string           `json:"type"`
	Payload   models.StateView `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

// Hub maintains the set of connected viewers and broadcasts board snapshots
// to them.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan models.StateView
	register   chan *Client
	unregister chan *Client

	// done is closed when Run returns; Register and Unregister fall through
	// instead of blocking on a stopped hub.
	done chan struct{}
}

// NewHub creates an idle hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan models.StateView, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run drives the hub until ctx is cancelled, then disconnects every viewer.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case view := <-h.broadcast:
			h.broadcastView(view)
		}
	}
}

// Register adds a viewer to the hub. On a stopped hub it is a no-op.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a viewer from the hub. On a stopped hub it is a no-op,
// so pump goroutines can always run their cleanup path.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a board snapshot for delivery to every viewer. If the hub
// is backed up the snapshot is dropped; a newer one is always on the way.
func (h *Hub) Broadcast(view models.StateView) {
	select {
	case h.broadcast <- view:
	default:
		log.Println("hub: broadcast buffer full, dropping snapshot")
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	log.Printf("hub: viewer %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("hub: viewer %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastView(view models.StateView) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	msg := Message{
		Type:      MessageTypeState,
		Payload:   view,
		Timestamp: time.Now().UTC(),
	}
	for _, c := range clients {
		if !c.TrySend(msg) {
			// Viewer cannot keep up with the board; cut it loose.
			log.Printf("hub: viewer %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("hub: shutting down (%d viewers)", len(h.clients))
	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
	close(h.done)
}
