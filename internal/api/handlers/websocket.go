package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/onnwee/quickcache/internal/apierr"
	"github.com/onnwee/quickcache/internal/cache"
	"github.com/onnwee/quickcache/internal/logger"
	"github.com/onnwee/quickcache/internal/metrics"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 30 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// How often to push a fresh metrics snapshot to connected clients
	defaultMetricsPushInterval = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now - CORS middleware handles this
		return true
	},
}

// WebSocketMessage represents a message sent to clients
type WebSocketMessage struct {
	Type    string      `json:"type"` // "snapshot", "error", "ping"
	Payload interface{} `json:"payload"`
}

// CacheSnapshotMessage is the periodic push payload for the live dashboard.
type CacheSnapshotMessage struct {
	Name    string                `json:"name"`
	Size    int                   `json:"size"`
	Metrics cache.MetricsSnapshot `json:"metrics"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts metrics snapshots
// to them on an interval.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Broadcast messages to all clients
	broadcast chan []byte

	store *cache.Store

	pushInterval time.Duration

	// Stop channel for the push loop
	stop chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub pushing snapshots of store.
func NewHub(store *cache.Store) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan []byte, 256),
		store:        store,
		pushInterval: defaultMetricsPushInterval,
		stop:         make(chan struct{}),
	}
}

// Run starts the hub's main loop and periodic metrics push.
func (h *Hub) Run(ctx context.Context) {
	go h.pushMetricsLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case <-h.stop:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.WebSocketConnections.Inc()
			logger.Info("WebSocket client connected", "total_clients", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketConnections.Dec()
				logger.Info("WebSocket client disconnected", "total_clients", len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, close the connection
					close(client.send)
					delete(h.clients, client)
					metrics.WebSocketConnections.Dec()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// pushMetricsLoop periodically broadcasts a fresh metrics snapshot.
func (h *Hub) pushMetricsLoop(ctx context.Context) {
	ticker := time.NewTicker(h.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stop:
			return
		case <-ticker.C:
			h.mu.RLock()
			clientCount := len(h.clients)
			h.mu.RUnlock()

			if clientCount == 0 {
				continue
			}

			if err := h.broadcastSnapshot(); err != nil {
				logger.Error("failed to broadcast cache metrics snapshot", "error", err)
			}
		}
	}
}

// broadcastSnapshot sends the current metrics snapshot to all connected clients.
func (h *Hub) broadcastSnapshot() error {
	msg := WebSocketMessage{
		Type: "snapshot",
		Payload: CacheSnapshotMessage{
			Name:    h.store.Name(),
			Size:    h.store.Size(),
			Metrics: h.store.GetMetricsSnapshot(),
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	n := len(h.clients)
	h.mu.RUnlock()
	if n == 0 {
		return nil
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("WebSocket broadcast channel full, dropping snapshot")
	}

	metrics.WebSocketMessagesSent.Inc()
	return nil
}

// readPump pumps messages from the WebSocket connection to the hub. Clients
// don't send anything meaningful on this stream; this just drains the
// connection so pong frames and close frames are observed.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket unexpected close", "error", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// WebSocketHandler handles WebSocket connections streaming cache metrics.
type WebSocketHandler struct {
	hub   *Hub
	store *cache.Store
}

// NewWebSocketHandler creates a new WebSocket handler over store.
func NewWebSocketHandler(store *cache.Store) *WebSocketHandler {
	hub := NewHub(store)
	// Start the hub in the background with a long-lived context
	go hub.Run(context.Background())

	return &WebSocketHandler{
		hub:   hub,
		store: store,
	}
}

// HandleWebSocket handles WebSocket upgrade and client connection
// GET /v1/cache/stream
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket", "error", err)
		apierr.WriteErrorWithContext(w, r, apierr.SystemInternal("Failed to establish WebSocket connection"))
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.register <- client

	// Send an immediate snapshot so the client doesn't wait for the first tick.
	initial := WebSocketMessage{
		Type: "snapshot",
		Payload: CacheSnapshotMessage{
			Name:    h.store.Name(),
			Size:    h.store.Size(),
			Metrics: h.store.GetMetricsSnapshot(),
		},
	}
	if data, err := json.Marshal(initial); err == nil {
		select {
		case client.send <- data:
		default:
		}
	}

	go client.writePump()
	go client.readPump()
}

// GetHub returns the WebSocket hub for external broadcasting.
func (h *WebSocketHandler) GetHub() *Hub {
	return h.hub
}
