package ws

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// Hub tracks connected clients and fans out broadcasts. It also owns the
// kitchen-open flag, which lives only in memory.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int64

	kitchenMu   sync.RWMutex
	kitchenOpen bool
}

func NewHub(kitchenOpen bool) *Hub {
	return &Hub{
		clients:     make(map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 64),
		done:        make(chan struct{}),
		kitchenOpen: kitchenOpen,
	}
}

// Run serves register, unregister and broadcast until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.enqueue(msg) {
					log.Printf("Dropping slow client %s", c.ID)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	c.closeSend()
	h.count.Store(int64(len(h.clients)))
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast sends one event to every connected client.
func (h *Hub) Broadcast(eventType EventType, payload any) error {
	msg, err := encode(eventType, "", payload)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
	return nil
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

func (h *Hub) KitchenOpen() bool {
	h.kitchenMu.RLock()
	defer h.kitchenMu.RUnlock()
	return h.kitchenOpen
}

func (h *Hub) SetKitchenOpen(open bool) {
	h.kitchenMu.Lock()
	h.kitchenOpen = open
	h.kitchenMu.Unlock()
}

// ToggleKitchen flips the flag and returns the new value.
func (h *Hub) ToggleKitchen() bool {
	h.kitchenMu.Lock()
	defer h.kitchenMu.Unlock()
	h.kitchenOpen = !h.kitchenOpen
	return h.kitchenOpen
}
