package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"sikkerchat/models"
	"sikkerchat/services"

	"github.com/gorilla/websocket"
)

// Hub fans stored messages out to live listeners, grouped by room name.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound

	logger *slog.Logger
	mu     sync.RWMutex
}

type outbound struct {
	room string
	data []byte
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	room     string
	username string
	msgSvc   *services.MessageService
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 256),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case out := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[out.room] {
				select {
				case client.send <- out.data:
				default:
					close(client.send)
					delete(h.rooms[out.room], client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.room] == nil {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true

	h.logger.Info("client joined room",
		"username", client.username, "room", client.room,
		"clients", len(h.rooms[client.room]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.rooms[client.room]; exists {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.rooms, client.room)
			}
			h.logger.Info("client left room",
				"username", client.username, "room", client.room)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS: the REST surface is open, so the feed is too
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, room, username string, msgSvc *services.MessageService) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "username", username, "error", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		room:     room,
		username: username,
		msgSvc:   msgSvc,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump accepts {"ciphertext": "..."} frames and stores them as messages
// authored by the connected user; the hub then fans them back out.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(300 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(300 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var body struct {
			Ciphertext string `json:"ciphertext"`
		}
		if err := json.Unmarshal(message, &body); err != nil {
			c.hub.logger.Warn("bad frame", "username", c.username, "error", err)
			continue
		}
		if body.Ciphertext == "" {
			continue
		}

		if _, err := c.msgSvc.Append(c.username, body.Ciphertext, c.room, c.username); err != nil {
			c.hub.logger.Error("storing websocket message failed",
				"username", c.username, "error", err)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(240 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastMessage implements services.MessageBroadcaster: every message
// stored through the message service reaches the room's live listeners.
func (h *Hub) BroadcastMessage(msg models.Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast <- outbound{room: msg.Room, data: b}
}
