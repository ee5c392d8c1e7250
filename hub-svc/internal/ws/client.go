package ws

import (
	"log"
	"sync"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
	sendQueueSize  = 64
)

// Client is one websocket connection. Its role starts as customer and can
// only be raised by a login on the same connection or a token at connect.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	role domain.Role

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, role domain.Role) *Client {
	return &Client{
		ID:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		role: role,
		send: make(chan []byte, sendQueueSize),
	}
}

func (c *Client) Role() domain.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

func (c *Client) setRole(role domain.Role) {
	c.mu.Lock()
	c.role = role
	c.mu.Unlock()
}

// enqueue never blocks; false means the queue is full or closed.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Reply sends an event to this client only.
func (c *Client) Reply(eventType EventType, requestID string, payload any) {
	msg, err := encode(eventType, requestID, payload)
	if err != nil {
		log.Printf("Error encoding %s for client %s: %v", eventType, c.ID, err)
		return
	}
	if !c.enqueue(msg) {
		log.Printf("Dropping %s for client %s: send queue unavailable", eventType, c.ID)
	}
}

func (c *Client) readPump(pongWait time.Duration, dispatch func(*Client, []byte)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading from client %s: %v", c.ID, err)
			}
			return
		}
		dispatch(c, data)
	}
}

func (c *Client) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
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
				log.Printf("Error writing to client %s: %v", c.ID, err)
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
