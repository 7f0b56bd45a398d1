package realtime

import (
	"context"
	"sync/atomic"
)

// Hub owns the set of connected clients and fans messages out to them.
type Hub struct {
	// Registered clients. Only touched by Run.
	clients map[*Client]bool

	// Inbound messages to relay to every client.
	broadcast chan []byte

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns.
	stopped chan struct{}
	count   atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	_ = client.conn.Close()
	h.count.Store(int64(len(h.clients)))
}

// Broadcast queues msg for every connected client. It returns false once
// the hub has stopped.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
		_ = c.conn.Close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
