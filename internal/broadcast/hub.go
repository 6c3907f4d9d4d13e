package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/threatlens/threatlens-api/internal/auth"
	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	defaultSendBuffer = 16
)

// Authenticator verifies the token presented on the websocket handshake
type Authenticator interface {
	Authenticate(token string) (auth.Identity, error)
}

// Hub is the in-process set of websocket subscribers
type Hub struct {
	upgrader      websocket.Upgrader
	authenticator Authenticator
	logger        *logging.Logger
	sendBuffer    int

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. A nil authenticator leaves the handshake open.
func NewHub(logger *logging.Logger, sendBuffer int, authenticator Authenticator) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browsers on any origin may subscribe
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		authenticator: authenticator,
		logger:        logger,
		sendBuffer:    sendBuffer,
		clients:       make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection as a subscriber
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.authenticator != nil {
		token := r.URL.Query().Get("token")
		if token == "" {
			token, _ = auth.BearerToken(r.Header.Get("Authorization"))
		}
		if _, err := h.authenticator.Authenticate(token); err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				httputil.RespondMessage(w, auth.MsgNoToken, http.StatusUnauthorized)
				return
			}
			logger.Warn("subscription denied", "reason", err.Error())
			httputil.RespondMessage(w, auth.MsgInvalidToken, http.StatusForbidden)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written an error response
		logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	logger.Debug("subscriber connected", "subscribers", h.Subscribers())

	go h.writePump(c)
	go h.readPump(c)
}

// Broadcast sends event to every connected subscriber. Subscribers whose
// buffer is full are disconnected rather than waited on.
func (h *Hub) Broadcast(_ context.Context, event Event) error {
	frame, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	h.fanout(frame)
	return nil
}

func (h *Hub) fanout(frame []byte) {
	var slow []*client

	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow subscriber", "remote_addr", c.conn.RemoteAddr().String())
		h.unregister(c)
	}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

// unregister closes c.send exactly once; the write pump then closes the conn
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards inbound messages and detects disconnects
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("subscriber read error", "error", err.Error())
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}
