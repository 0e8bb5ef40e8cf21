package automation

import (
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FansOutToAllSubscribers(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	a, unsubA := h.Subscribe()
	defer unsubA()
	b, unsubB := h.Subscribe()
	defer unsubB()

	events <- hook.Event{Kind: hook.KeyDown, Keycode: 1}

	for _, ch := range []<-chan hook.Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, uint16(1), ev.Keycode)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	ch, unsubscribe := h.Subscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok, "channel closes on unsubscribe")

	// Delivery after unsubscribe must not block the source.
	select {
	case events <- hook.Event{Kind: hook.KeyDown}:
	case <-time.After(time.Second):
		t.Fatal("source blocked after unsubscribe")
	}
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	_, unsubscribe := h.Subscribe()
	unsubscribe()
	unsubscribe() // second call must not panic on the closed channel
}

func TestHub_CloseReleasesSubscribers(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })

	ch, _ := h.Subscribe()
	h.Close()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "subscriber channel closes when the source drains")
	case <-time.After(time.Second):
		t.Fatal("subscriber channel never closed")
	}

	// Late subscribers get an already-closed channel.
	require.Eventually(t, func() bool {
		late, _ := h.Subscribe()
		_, ok := <-late
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestHub_DropsEventsForSlowSubscribers(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	// Fill the buffer and then some; the overflow is dropped, never
	// blocking the source.
	for i := 0; i < subBufferSize*2; i++ {
		select {
		case events <- hook.Event{Kind: hook.KeyDown, Keycode: uint16(i)}:
		case <-time.After(time.Second):
			t.Fatalf("source blocked on event %d", i)
		}
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.LessOrEqual(t, received, subBufferSize)
			assert.Positive(t, received)
			return
		}
	}
}
