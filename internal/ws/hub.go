// Package ws fans generation patches out to connected viewer clients.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/halstein/dungeon-forge/internal/protocol"
)

const writeTimeout = 3 * time.Second

type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	sequence uint64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// BroadcastPatch stamps the payload with the next sequence number and
// sends it to every client. Clients that fail a write are dropped.
func (h *Hub) BroadcastPatch(patchType string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sequence++
	message, err := json.Marshal(protocol.PatchEnvelope{
		Sequence: h.sequence,
		Type:     patchType,
		Payload:  payload,
	})
	if err != nil {
		log.Printf("ws: failed to marshal %s patch: %v", patchType, err)
		return
	}

	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
}
