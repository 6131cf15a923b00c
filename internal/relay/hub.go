// Package relay broadcasts JSON notifications to every connected listener.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/talkpad/talkpad/internal/logging/events"
)

const defaultBuffer = 16

// Hub fans published payloads out to subscribers. A subscriber that falls
// behind by a full buffer drops payloads rather than blocking publishers.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]chan []byte
	order  []string
	buffer int
}

// NewHub returns an empty hub. buffer <= 0 uses a default.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[string]chan []byte), buffer: buffer}
}

// Subscribe registers a listener. The returned cancel closes the channel and
// may be called more than once.
func (h *Hub) Subscribe() (id string, ch <-chan []byte, cancel func()) {
	id = uuid.NewString()
	c := make(chan []byte, h.buffer)
	h.mu.Lock()
	h.subs[id] = c
	h.order = append(h.order, id)
	total := len(h.subs)
	h.mu.Unlock()
	events.Relay.Subscribe(id, total)

	var once sync.Once
	cancel = func() {
		once.Do(func() { h.remove(id) })
	}
	return id, c, cancel
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		for i, existing := range h.order {
			if existing == id {
				h.order = append(h.order[:i:i], h.order[i+1:]...)
				break
			}
		}
		close(c)
	}
	total := len(h.subs)
	h.mu.Unlock()
	if ok {
		events.Relay.Unsubscribe(id, total)
	}
}

// Subscribers returns the number of listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast delivers a raw JSON payload to every subscriber.
func (h *Hub) Broadcast(payload []byte) (delivered, dropped int) {
	data := make([]byte, len(payload))
	copy(data, payload)

	h.mu.Lock()
	for _, id := range h.order {
		select {
		case h.subs[id] <- data:
			delivered++
		default:
			dropped++
		}
	}
	h.mu.Unlock()
	events.Relay.Publish(payloadType(data), delivered, dropped)
	return delivered, dropped
}

// Publish encodes v and broadcasts it.
func (h *Hub) Publish(_ context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	h.Broadcast(data)
	return nil
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := append([]string(nil), h.order...)
	h.mu.Unlock()
	for _, id := range ids {
		h.remove(id)
	}
}

func payloadType(data []byte) string {
	var head struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(data, &head) != nil || head.Type == "" {
		return "unknown"
	}
	return head.Type
}
