package host

import (
	"sync"

	"github.com/google/uuid"
)

// ConfigMsg is pushed to every open panel when the host configuration
// changes.
type ConfigMsg struct {
	Duration int
}

// Hub fans config messages out to subscribed panels. A slow subscriber only
// ever sees the latest message.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]chan ConfigMsg
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan ConfigMsg)}
}

// Subscribe registers a panel. The returned function unsubscribes and closes
// the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan ConfigMsg, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan ConfigMsg, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := uuid.NewString()
	h.subs[id] = ch
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

// Publish delivers msg to every subscriber without blocking. An undelivered
// older message is replaced.
func (h *Hub) Publish(msg ConfigMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- msg
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close closes every subscription. Later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
