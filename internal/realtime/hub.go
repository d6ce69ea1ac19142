// Package realtime pushes task lifecycle events to the owning user's
// connected websocket clients.
package realtime

import (
	"encoding/json"
	"sync"
)

// Event names broadcast after successful mutations.
const (
	EventTaskCreated          = "task_created"
	EventTaskUpdated          = "task_updated"
	EventTaskStatusChanged    = "task_status_changed"
	EventTaskDeleted          = "task_deleted"
	EventSubtaskCreated       = "subtask_created"
	EventSubtaskUpdated       = "subtask_updated"
	EventSubtaskStatusChanged = "subtask_status_changed"
	EventSubtaskDeleted       = "subtask_deleted"
)

// Event is the wire shape of a broadcast message.
type Event struct {
	Type      string `json:"type"`
	TaskID    uint   `json:"taskId"`
	SubtaskID uint   `json:"subtaskId,omitempty"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
// It is constructed once in main and injected; there is no singleton.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[uint]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{userIDToClients: make(map[uint]map[Client]struct{})}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if the user has no more clients, cleans up the map.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Publish sends an event to all clients of a user. Write failures are left
// for the ws handler to clean up on its side.
func (h *Hub) Publish(userID uint, evt Event) {
	message, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		_ = c.Send(message)
	}
}
