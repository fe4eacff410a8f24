package telemetry

import (
	"errors"
	"sync"
)

// Event represents a single device lifecycle event.
type Event struct {
	ID   int64                  `json:"id,omitempty"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// ErrStopped indicates the hub has been shut down.
var ErrStopped = errors.New("telemetry hub stopped")

// ErrDuplicateSubscriber indicates the subscriber ID is already in use.
var ErrDuplicateSubscriber = errors.New("duplicate subscriber")

// Hub fans events out to subscribers with a bounded replay buffer.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]chan Event
	nextID  int64
	ring    []Event
	cap     int
	stopped bool
}

// NewHub creates a hub retaining up to bufferSize events for replay.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Hub{
		subs: make(map[string]chan Event),
		cap:  bufferSize,
	}
}

// Subscribe registers a subscriber and returns its event channel. The
// channel buffers up to depth events; events beyond that are dropped for
// this subscriber.
func (h *Hub) Subscribe(id string, depth int) (<-chan Event, error) {
	if depth <= 0 {
		depth = 16
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return nil, ErrStopped
	}
	if _, ok := h.subs[id]; ok {
		return nil, ErrDuplicateSubscriber
	}

	ch := make(chan Event, depth)
	h.subs[id] = ch
	return ch, nil
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Publish stamps the event with the next monotonic ID, records it in the
// replay ring, and fans it out without blocking.
func (h *Hub) Publish(ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return ErrStopped
	}

	h.nextID++
	ev.ID = h.nextID

	h.ring = append(h.ring, ev)
	if len(h.ring) > h.cap {
		h.ring = h.ring[len(h.ring)-h.cap:]
	}

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber not keeping up; drop rather than stall.
		}
	}

	return nil
}

// Replay returns a copy of the retained events in publish order.
func (h *Hub) Replay() []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Event, len(h.ring))
	copy(out, h.ring)
	return out
}

// Stop shuts the hub down and closes all subscriber channels.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return
	}
	h.stopped = true

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
