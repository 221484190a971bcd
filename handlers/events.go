// handlers/events.go - WebSocket State-Change Events
package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Event is pushed to every connected client after a state mutation so other
// open tabs can re-render.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Hub fans events out to connected websocket clients.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Broadcast sends an event to every client; dead connections are dropped.
func (h *Hub) Broadcast(eventType string) {
	event := Event{Type: eventType, At: time.Now().UTC()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("ws write failed, dropping client: %v", err)
			_ = c.Close()
			delete(h.conns, c)
		}
	}
}

// WebSocketUpgrade gates the /ws route to real upgrade requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebSocket registers a client and holds the connection open until it
// closes. Clients never send anything meaningful; the read loop only
// detects disconnects.
func (h *Handler) WebSocket() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.hub.add(c)
		defer h.hub.remove(c)

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
