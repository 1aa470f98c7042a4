package clubs

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	EventMemberJoined = "member_joined"
	EventMemberLeft   = "member_left"
	EventClubUpdated  = "club_updated"
	EventClubDeleted  = "club_deleted"
)

// Event is pushed to every connection subscribed to ClubID.
type Event struct {
	Type    string `json:"type"`
	ClubID  int64  `json:"club_id"`
	Payload any    `json:"payload,omitempty"`
}

// Publisher delivers club events. The service only depends on this.
type Publisher interface {
	Publish(event Event)
}

type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	clubs  map[int64]bool
}

// Hub keeps the live websocket connections and the clubs each one follows.
// A user may hold several connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]struct{})}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Publish sends the event to subscribers of its club. Connections whose send
// buffer is full miss the event.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("club_event_marshal_failed type=%s club_id=%d err=%v", event.Type, event.ClubID, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.clubs[event.ClubID] {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// Subscribers counts the connections following a club.
func (h *Hub) Subscribers(clubID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.connections {
		if c.clubs[clubID] {
			n++
		}
	}
	return n
}

// ServeWS upgrades the request and blocks until the client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, clubID int64) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		clubs:  map[int64]bool{clubID: true},
	}
	h.register(c)

	go h.writePump(c)
	h.readPump(c)
	return nil
}

// readPump handles subscribe/unsubscribe requests and keeps the read
// deadline fresh on pong.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("club_ws_read_error user_id=%d err=%v", c.userID, err)
			}
			return
		}

		var req struct {
			Type   string `json:"type"`
			ClubID int64  `json:"club_id"`
		}
		if err := json.Unmarshal(msg, &req); err != nil || req.ClubID <= 0 {
			continue
		}

		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.clubs[req.ClubID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.clubs, req.ClubID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
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
