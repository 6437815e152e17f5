// Package websocket pushes task events to connected browser clients so an
// open task list can refresh without polling.
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

// Hub tracks connected clients and broadcasts task events to all of them.
// It implements ports.TaskEventPublisher.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// PublishTaskEvent sends the event to every connected client. Clients whose
// write fails are dropped.
func (h *Hub) PublishTaskEvent(ctx context.Context, event ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Debug("Dropping websocket client", "error", err)
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
	return nil
}

// Handler returns the fiber websocket handler for the /ws route. The read
// loop only exists to notice disconnects; clients are not expected to send
// anything.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		h.register(conn)
		defer h.unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
