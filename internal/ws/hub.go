package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub owns the set of live websocket clients, keyed by connection id.
type Hub struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Add(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.logger.Sugar().Debugf("client(%s) connected for user(%s)", client.ID, client.UserID.String())
}

func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	if current, ok := h.clients[client.ID]; ok && current == client {
		delete(h.clients, client.ID)
		close(client.send)
	}
	h.mu.Unlock()

	h.logger.Sugar().Debugf("client(%s) disconnected", client.ID)
}

// Send queues a payload on the client's outbound channel. It reports false
// when the connection is gone or its buffer is full; the payload is dropped
// either way and the caller is never blocked.
func (h *Hub) Send(connID string, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connID]
	if !ok {
		return false
	}

	select {
	case client.send <- payload:
		return true
	default:
		h.logger.Sugar().Warnf("client(%s) send buffer full, dropping payload", connID)
		return false
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
