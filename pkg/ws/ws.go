// Package ws streams storage change events to browser tabs over WebSocket.
//
// Every socket joins the room of its client namespace. A kv.Change published
// for that namespace is delivered to every socket in the room, so all open
// tabs of one client see each other's cart and override writes:
//
//	hub := ws.NewHub()
//	go hub.Run(ctx)
//	stop := hub.Attach(notifier)
//	defer stop()
//
//	router.Get("/api/events", "events.stream", func(w http.ResponseWriter, r *http.Request) {
//	    ws.Upgrade(w, r, hub, kv.NamespaceOf(middleware.ClientStore(r.Context())))
//	})
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SetCheckOrigin replaces the default same-origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Event is the JSON frame sent to sockets.
type Event struct {
	Type    string    `json:"type"`
	Key     string    `json:"key"`
	Removed bool      `json:"removed"`
	At      time.Time `json:"at"`
}

// EventOf converts a store change into its wire frame.
func EventOf(c kv.Change) Event {
	return Event{Type: "storage", Key: c.Key, Removed: c.Removed, At: c.At}
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client is one connected socket.
type Client struct {
	hub  *Hub
	room string
	conn *websocket.Conn
	send chan []byte
}

// readPump only services pongs and close frames; clients never send data.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// ─── Hub ──────────────────────────────────────────────────────────────────────

// Hub owns the rooms. All membership changes happen in Run.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	changes    chan kv.Change
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changes:    make(chan kv.Change, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub event loop. It returns when ctx is done, after closing
// every socket.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.room] == nil {
				h.rooms[c.room] = make(map[*Client]struct{})
			}
			h.rooms[c.room][c] = struct{}{}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.drop(c)

		case change := <-h.changes:
			h.deliver(change)
		}
	}
}

func (h *Hub) deliver(change kv.Change) {
	msg, err := json.Marshal(EventOf(change))
	if err != nil {
		return
	}

	h.mu.RLock()
	var slow []*Client
	for c := range h.rooms[change.Namespace] {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.drop(c)
	}
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[c.room]
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.room)
	}
	close(c.send)
}

func (h *Hub) shutdown() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for name, room := range h.rooms {
		for c := range room {
			close(c.send)
		}
		delete(h.rooms, name)
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues change for delivery. It never blocks; when the queue is
// full the change is dropped.
func (h *Hub) Publish(change kv.Change) {
	if change.Namespace == "" {
		return
	}
	select {
	case h.changes <- change:
	default:
		logger.Warn("ws: change queue full, dropping event", "key", change.Key)
	}
}

// Attach subscribes the hub to n and returns the unsubscribe function.
func (h *Hub) Attach(n *kv.Notifier) func() {
	return n.Subscribe(h.Publish)
}

// ClientCount returns the number of sockets in room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades the request to a WebSocket joined to room.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return
	}

	c := &Client{hub: hub, room: room, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case hub.register <- c:
	case <-hub.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
