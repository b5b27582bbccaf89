package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/deckmd/pkg/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// client is one websocket subscriber to the progress feed
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan Event
	hub    *Hub
	logger logger.Logger
}

// createUpgrader creates a websocket upgrader that only accepts local
// origins; the preview is a loopback tool.
func (s *PreviewServer) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return isLocalOrigin(r)
		},
	}
}

// handleWebSocket handles websocket upgrade requests
func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", logger.Error(err))
		return
	}

	c := &client{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan Event, 256),
		hub:    s.hub,
		logger: s.logger,
	}

	s.hub.Register(&connection{id: c.id, send: c.send})

	go c.writePump()
	go c.readPump()

	select {
	case c.send <- Event{
		Type:      EventTypeConnected,
		Message:   "connected to deckmd preview",
		Timestamp: time.Now(),
	}:
	default:
	}
}

// readPump drains messages from the peer; clients only listen, so
// anything received beyond control frames is discarded.
func (c *client) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket connection error", logger.Error(err))
			}
			return
		}
	}
}

// writePump pumps events to the websocket connection
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isLocalOrigin accepts same-origin requests and loopback hosts
func isLocalOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	switch originURL.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
