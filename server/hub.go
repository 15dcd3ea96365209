// Package server streams simulation snapshots to websocket clients. The
// stream is read-only observability: clients get state, they cannot steer
// the simulation.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 5 * time.Second
	// sendBuffer frames queue per client; slow clients drop frames rather
	// than stall the broadcast
	sendBuffer = 8
)

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub fans simulation frames out to connected websocket clients.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

// NewHub creates an empty hub. A nil logger disables logging.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:     log,
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and registers the client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	hello, _ := json.Marshal(HelloMessage{Type: TypeHello, ClientID: c.id.String()})

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Info("stream client connected", zap.String("client", c.id.String()))

	go h.writePump(c, hello)
	go h.readPump(c)
}

// writePump delivers queued frames until the client goes away
func (h *Hub) writePump(c *client, hello []byte) {
	defer h.drop(c)

	if err := h.write(c, hello); err != nil {
		return
	}
	for msg := range c.send {
		if err := h.write(c, msg); err != nil {
			return
		}
	}
}

func (h *Hub) write(c *client, msg []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// readPump discards inbound traffic; its job is to notice disconnects
func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Broadcast queues one frame for every connected client, dropping frames for
// clients whose queue is full.
func (h *Hub) Broadcast(msg FrameMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Warn("frame marshal failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow consumer, skip this frame
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ListenAndServe runs an HTTP server exposing the stream at /stream until
// the context is canceled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/stream", h)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.log.Info("state stream listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
