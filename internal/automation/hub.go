package automation

import (
	"sync"

	hook "github.com/robotn/gohook"
)

// Hub fans one global gohook event stream out to subscribers. gohook only
// supports a single Start per process, and both the click recorder and the
// stop-key watcher need events at the same time, so they share this hub.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan hook.Event]struct{}
	closed bool
	stop   func()
}

const subBufferSize = 16

// StartHub begins capturing global input events. Close must be called to
// release the OS hook.
func StartHub() *Hub {
	events := hook.Start()
	return newHub(events, hook.End)
}

// newHub wires a hub to an arbitrary event source. Split from StartHub so
// tests can feed synthetic events.
func newHub(events chan hook.Event, stop func()) *Hub {
	h := &Hub{
		subs: make(map[chan hook.Event]struct{}),
		stop: stop,
	}

	go func() {
		for ev := range events {
			h.mu.Lock()
			for ch := range h.subs {
				select {
				case ch <- ev:
				default:
					// Slow subscriber: drop rather than stall the
					// global hook stream.
				}
			}
			h.mu.Unlock()
		}

		// Source closed: release remaining subscribers.
		h.mu.Lock()
		for ch := range h.subs {
			close(ch)
		}
		h.subs = nil
		h.closed = true
		h.mu.Unlock()
	}()

	return h
}

// Subscribe returns a channel of input events plus an unsubscribe func.
// The channel is closed when the hub shuts down.
func (h *Hub) Subscribe() (<-chan hook.Event, func()) {
	ch := make(chan hook.Event, subBufferSize)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
}

// Close stops the underlying OS hook. Subscriber channels close once the
// source drains.
func (h *Hub) Close() {
	if h.stop != nil {
		h.stop()
	}
}
