package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/streamlex/live-translator/pkg/logging"
)

const writeTimeout = 5 * time.Second

// Event is one message on the live feed. Type is "transcription",
// "state" or "error"; Payload carries the event body.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// client pairs a connection with a write lock. The websocket package
// allows at most one concurrent writer per connection, and broadcasts
// arrive from multiple pipeline callbacks at once.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(event)
}

// Hub fans transcription results out to connected websocket clients.
// Slow or broken clients are disconnected rather than allowed to block
// the pipeline callback.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
	logger  *logrus.Entry
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		logger:  logging.WithComponent("live"),
	}
}

// add registers a client connection.
func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &client{conn: conn}
}

// remove unregisters and closes a client connection.
func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends one event to every connected client. Safe to call
// from concurrent callbacks; writes to each connection are serialized.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		targets = append(targets, cl)
	}
	h.mu.Unlock()

	for _, cl := range targets {
		if err := cl.send(event); err != nil {
			h.logger.WithError(err).Debug("dropping websocket client")
			h.remove(cl.conn)
		}
	}
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
