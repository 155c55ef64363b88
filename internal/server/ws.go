package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/gallery"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/input"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateSource supplies the per-frame gallery state the overlay renders.
type StateSource interface {
	Snapshot() gallery.Snapshot
}

// stateMessage is the WebSocket envelope. Type is "state" for periodic
// snapshots and "event" for synthetic input events.
type stateMessage struct {
	Type  string            `json:"type"`
	State *gallery.Snapshot `json:"state,omitempty"`
	Event *input.Event      `json:"event,omitempty"`
}

// StateHandler streams gallery state snapshots to WebSocket clients at
// ~30 Hz and forwards synthetic input events as they fire.
type StateHandler struct {
	source  StateSource
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHandler creates a StateHandler reading from the given source.
func NewStateHandler(source StateSource) *StateHandler {
	h := &StateHandler{
		source:  source,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep the connection alive by draining client messages.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// PublishEvent forwards a synthetic input event to all connected clients.
// The pipeline wires this as the dispatcher hook so the overlay replays
// the same event stream the in-process regions receive.
func (h *StateHandler) PublishEvent(ev input.Event) {
	msg, err := json.Marshal(stateMessage{Type: "event", Event: &ev})
	if err != nil {
		return
	}
	h.send(msg)
}

// broadcast pushes state snapshots to all connected clients.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		snap := h.source.Snapshot()
		msg, err := json.Marshal(stateMessage{Type: "state", State: &snap})
		if err != nil {
			continue
		}
		h.send(msg)
	}
}

func (h *StateHandler) send(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
