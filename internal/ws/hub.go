package ws

import (
	"context"
	"errors"
	"log"
	"sync"
)

var ErrHubStopped = errors.New("notification hub stopped")

// Hub fans notification events out to every connected client. Membership
// changes take the mutex directly so they never wait on Run.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan []byte
	stopped   bool
	mutex     sync.RWMutex
	logger    *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 1024),
		logger:    logger,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client and
// rejects further registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			h.stopped = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- message:
				default:
					h.Unregister(client)
				}
			}
			h.logf("[WS] Broadcast clients=%d", len(snapshot))
		}
	}
}

func (h *Hub) Register(client *Client) error {
	if h == nil || client == nil {
		return ErrHubStopped
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		return ErrHubStopped
	}
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()

	h.logf("[WS] Connected total_clients=%d", total)
	return nil
}

// Unregister drops client and closes its send channel. Unknown or already
// removed clients are ignored.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()

	if ok {
		h.logf("[WS] Disconnected total_clients=%d", total)
	}
}

// Broadcast queues message for delivery. A full buffer drops it.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("[WS] Broadcast dropped reason=buffer_full")
	}
}

func (h *Hub) Stopped() bool {
	if h == nil {
		return true
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.stopped
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
