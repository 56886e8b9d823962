package sse

import (
	"sync"
)

// subscriberBuffer is the per-connection channel depth. Publishes into a
// full channel are dropped rather than blocking the publisher.
const subscriberBuffer = 10

// Event is one server-sent event addressed to a single user. A user with
// several open tabs has several subscribers and each gets a copy.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans notification events out to live SSE connections, keyed by user.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for userID. The returned cleanup must be
// called when the connection closes; it unregisters and closes the channel.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}
	return ch, cleanup
}

// Publish delivers event to every subscriber of userID. Slow consumers with
// a full buffer miss the event; they catch up from the notification list.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany stamps the event with each recipient and publishes it.
func (h *Hub) PublishToMany(userIDs []string, event Event) {
	for _, userID := range userIDs {
		ev := event
		ev.UserID = userID
		h.Publish(userID, ev)
	}
}

// SubscriberCount reports the open connections for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
