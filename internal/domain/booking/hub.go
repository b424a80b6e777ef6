package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const availabilityChannel = "spacely:availability"

// Event is the message pushed to calendar watchers. Date is empty when
// a schedule change touches every day.
type Event struct {
	Type    string `json:"type"`
	SpaceID string `json:"space_id"`
	Date    string `json:"date,omitempty"`
}

// Hub fans availability change events out to websocket watchers.
// Events pass through Redis pub/sub so every instance sees changes
// made on any of them; without Redis the hub degrades to local-only
// delivery.
type Hub struct {
	redis      *redis.Client
	register   chan *client
	unregister chan *client
	local      chan Event
	clients    map[*client]bool
}

// NewHub creates the availability hub. rdb may be nil.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		redis:      rdb,
		register:   make(chan *client),
		unregister: make(chan *client),
		local:      make(chan Event, 64),
		clients:    make(map[*client]bool),
	}
}

// Run owns the client set. Call it once in its own goroutine; it exits
// when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.redis != nil {
		go h.subscribe(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case event := <-h.local:
			h.deliver(event)
		}
	}
}

// AvailabilityChanged publishes a change event. It satisfies the
// Notifier interfaces of the booking and space services.
func (h *Hub) AvailabilityChanged(ctx context.Context, spaceID uuid.UUID, date string) {
	event := Event{Type: "availability_changed", SpaceID: spaceID.String(), Date: date}

	if h.redis == nil {
		select {
		case h.local <- event:
		default:
			log.Warn().Msg("availability event dropped, local queue full")
		}
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := h.redis.Publish(ctx, availabilityChannel, payload).Err(); err != nil {
		log.Error().Err(err).Msg("availability event publish failed")
	}
}

func (h *Hub) subscribe(ctx context.Context) {
	sub := h.redis.Subscribe(ctx, availabilityChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case h.local <- event:
			default:
			}
		}
	}
}

func (h *Hub) deliver(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	for c := range h.clients {
		if !c.wants(event) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	spaceID string
	date    string
}

// wants filters events by the client's subscription. An event with an
// empty date matches any watched date.
func (c *client) wants(event Event) bool {
	if c.spaceID != event.SpaceID {
		return false
	}
	return c.date == "" || event.Date == "" || c.date == event.Date
}

// ServeWS handles GET /ws?space_id=...&date=...
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	spaceID := r.URL.Query().Get("space_id")
	if _, err := uuid.Parse(spaceID); err != nil {
		http.Error(w, "invalid space_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 16),
		spaceID: spaceID,
		date:    r.URL.Query().Get("date"),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
