package automation

import (
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopWatcher_FlagsOnStopKey(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	w := WatchStopKey(h, DefaultStopKey)
	defer w.Close()

	require.False(t, w.Stopped())

	events <- hook.Event{Kind: hook.KeyDown, Keycode: hook.Keycode[DefaultStopKey]}

	require.Eventually(t, w.Stopped, time.Second, 5*time.Millisecond)
}

func TestStopWatcher_IgnoresOtherInput(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	w := WatchStopKey(h, DefaultStopKey)
	defer w.Close()

	events <- hook.Event{Kind: hook.KeyDown, Keycode: hook.Keycode["a"]}
	events <- hook.Event{Kind: hook.KeyUp, Keycode: hook.Keycode[DefaultStopKey]}
	events <- hook.Event{Kind: hook.MouseDown, Button: hook.MouseMap["left"]}

	time.Sleep(50 * time.Millisecond)
	assert.False(t, w.Stopped())
}

func TestStopWatcher_StaysFlaggedAfterClose(t *testing.T) {
	events := make(chan hook.Event)
	h := newHub(events, func() { close(events) })
	defer h.Close()

	w := WatchStopKey(h, DefaultStopKey)

	events <- hook.Event{Kind: hook.KeyDown, Keycode: hook.Keycode[DefaultStopKey]}
	require.Eventually(t, w.Stopped, time.Second, 5*time.Millisecond)

	w.Close()
	w.Close() // safe to call twice, also after the internal unsubscribe
	assert.True(t, w.Stopped())
}
