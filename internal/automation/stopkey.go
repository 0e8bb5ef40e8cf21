package automation

import (
	"sync/atomic"

	hook "github.com/robotn/gohook"

	"github.com/nexusdl/nexusdl/internal/core/logging"
)

// DefaultStopKey is the dedicated emergency-stop key.
const DefaultStopKey = "f4"

// StopWatcher observes one dedicated key on the global input stream. The
// first press flips the flag and the watcher stops consuming; the flag is
// polled by the orchestrator at every natural suspension point. Nothing
// in flight is interrupted — only forward progress is withheld.
type StopWatcher struct {
	flag        atomic.Bool
	unsubscribe func()
}

// WatchStopKey starts watching for key (a gohook key name, e.g. "f4") on
// the hub. Close must be called on every exit path so the background watch
// does not leak.
func WatchStopKey(hub *Hub, key string) *StopWatcher {
	log := logging.Component("stopkey")

	w := &StopWatcher{}
	events, unsubscribe := hub.Subscribe()
	w.unsubscribe = unsubscribe

	keycode := hook.Keycode[key]

	go func() {
		for ev := range events {
			if ev.Kind != hook.KeyDown || ev.Keycode != keycode {
				continue
			}
			w.flag.Store(true)
			log.Warn().Str("key", key).Msg("stop requested")
			unsubscribe()
			return
		}
	}()

	return w
}

// Stopped is the non-blocking "should stop" poll.
func (w *StopWatcher) Stopped() bool {
	return w.flag.Load()
}

// Close unregisters the watcher. Safe to call more than once and after the
// flag has fired.
func (w *StopWatcher) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
}
