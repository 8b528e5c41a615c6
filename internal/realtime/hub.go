package realtime

import (
	"encoding/json"
	"sync"
)

// Event is a task change notification pushed to connected clients.
type Event struct {
	Type    string `json:"type"`
	TaskID  string `json:"taskId"`
	ActorID string `json:"actorId"`
}

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and pushes events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			clients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients the entry is
// cleaned up.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Publish marshals the event once and sends it to every connection of each
// listed user. Duplicate and empty user IDs are skipped; send failures are
// left for the connection handler to clean up.
func (h *Hub) Publish(userIDs []string, evt Event) {
	message, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, ok := sent[id]; ok {
			continue
		}
		sent[id] = struct{}{}
		for c := range h.clients[id] {
			_ = c.Send(message)
		}
	}
}
