// Package http serves the local preview of a converted document: the
// markdown output, its derived HTML view, and a websocket feed carrying
// conversion progress events.
package http

import (
	"context"
	"sync"
	"time"
)

// Event types pushed to preview clients.
const (
	EventTypeConnected = "connected"
	EventTypeProgress  = "progress"
	EventTypeComplete  = "complete"
	EventTypeReload    = "reload"
)

// Event is a message pushed to preview clients
type Event struct {
	Type      string    `json:"type"`
	Percent   int       `json:"percent,omitempty"`
	Path      string    `json:"path,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// connection represents one registered websocket client
type connection struct {
	id   string
	send chan Event
}

// Hub fans events out to all registered websocket clients
type Hub struct {
	connections map[string]*connection
	broadcast   chan Event
	register    chan *connection
	unregister  chan string
	mu          sync.RWMutex
	done        chan struct{}
}

// NewHub creates an event hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		broadcast:   make(chan Event, 256),
		register:    make(chan *connection),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Run starts the hub main loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn.id] = conn
			h.mu.Unlock()

		case id := <-h.unregister:
			h.mu.Lock()
			if conn, ok := h.connections[id]; ok {
				delete(h.connections, id)
				close(conn.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for _, conn := range h.connections {
				select {
				case conn.send <- event:
				default:
					// Client too slow, drop it.
					close(conn.send)
					delete(h.connections, conn.id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// Broadcast sends an event to all connections
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// CloseAll closes all connections
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.connections {
		close(conn.send)
		delete(h.connections, id)
	}
}

// Count returns the number of registered connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
