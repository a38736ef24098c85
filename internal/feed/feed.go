package feed

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time event pushed to a subscriber's feed.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventTypeRecipePublished is emitted to followers when an author they
// subscribe to publishes a new recipe.
const EventTypeRecipePublished = "recipe_published"

// Client represents a single feed connection (one open SSE stream).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub fans events out to the open feed connections of each user.
type Hub struct {
	clients map[uint]map[Client]bool
	mu      sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers a new feed connection for a user.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[Client]bool)
	}
	h.clients[userID][client] = true
}

// Unsubscribe removes a feed connection.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.clients, userID)
			}
		}
	}
}

// Notify sends an event to every open connection of each listed user.
func (h *Hub) Notify(userIDs []uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	for _, userID := range userIDs {
		for client := range h.clients[userID] {
			// Use a non-blocking send to prevent a slow client from blocking the hub.
			select {
			case client <- messageBytes:
			default:
				// Client channel is full, maybe they are disconnected or slow.
				// The unsubscribe logic will handle cleaning this up eventually.
			}
		}
	}
}
