package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/gorilla/websocket"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// EventConnected is sent to a client right after it is registered
	EventConnected = "connected"

	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong before treating the connection as dead
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	sendBufSize = 16
)

var _ interfaces.Broadcaster = (*Hub)(nil)

// Message is the JSON envelope of every event pushed to clients
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub keeps the set of connected websocket clients and fans events out to them
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn   *websocket.Conn
	send   chan []byte
	filter Filter
}

// Scoped is implemented by payloads that belong to one device and counter,
// such as *model.Reading. Other payloads reach every client.
type Scoped interface {
	Scope() (types.DeviceID, types.CounterName)
}

// Filter narrows a subscription to one device and/or counter. Empty fields
// match anything, so the zero Filter receives every event.
type Filter struct {
	Device  types.DeviceID    `json:"device,omitempty"`
	Counter types.CounterName `json:"counter,omitempty"`
}

// FilterFromRequest reads the device and counter query parameters
func FilterFromRequest(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		Device:  types.DeviceID(q.Get("device")),
		Counter: types.CounterName(q.Get("counter")),
	}
}

// Match reports whether an event with payload should reach this subscription
func (f Filter) Match(payload any) bool {
	scoped, ok := payload.(Scoped)
	if !ok {
		return true
	}
	device, counter := scoped.Scope()
	if f.Device != "" && f.Device != device {
		return false
	}
	if f.Counter != "" && f.Counter != counter {
		return false
	}
	return true
}

// New creates a Hub. Origins are not checked; put CORS at the reverse proxy.
func New() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
	ctxlog.From(ctx).Info("Websocket hub stopped")
}

// Broadcast sends event to every connected client whose filter matches
// payload. Clients whose buffer is full are disconnected instead of blocking
// the caller.
func (h *Hub) Broadcast(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return goerr.Wrap(err, "failed to encode websocket message", goerr.V("event", event))
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return goerr.New("websocket hub is closed", goerr.V("event", event))
	}
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		if c.filter.Match(payload) {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !h.deliver(c, data) {
			ctxlog.From(ctx).Warn("Dropping slow websocket client",
				"event", event,
				"remote", c.conn.RemoteAddr().String(),
			)
			h.unregister(c)
		}
	}

	return nil
}

// ServeHTTP upgrades the connection and serves the client until it
// disconnects. The optional device and counter query parameters scope the
// subscription.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response
		ctxlog.From(r.Context()).Debug("Websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBufSize),
		filter: filter,
	}
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}
	defer h.unregister(c)

	if data, err := json.Marshal(Message{Event: EventConnected, Data: map[string]any{"time": time.Now(), "filter": filter}}); err == nil {
		h.deliver(c, data)
	}

	go c.writePump()
	c.readPump()
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
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

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// deliver queues data for c without blocking; false means the buffer is full.
// The read lock keeps unregister from closing c.send mid-send.
func (h *Hub) deliver(c *client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// writePump forwards queued messages to the connection and sends pings
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// removed from the hub
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump handles control frames and detects disconnects. Blocks until the connection closes.
func (c *client) readPump() {
	defer func() { _ = c.conn.Close() }()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
