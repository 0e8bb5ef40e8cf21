// Package automation wraps the OS-level primitives the orchestrator drives:
// opening pages in the user's browser, synthesizing clicks and key combos,
// capturing the screen, and watching global input for the recorded click and
// the emergency stop key.
//
// The orchestrator consumes the small interfaces defined here; the Robot*
// implementations are the real thing, tests substitute fakes. All calls are
// synchronous and treated as infallible-but-possibly-no-op: the tool cannot
// tell "browser didn't open" from "browser opened slowly".
package automation

import (
	"context"
	"image"
)

// Browser controls the user's default browser. Tab operations are key-combo
// based (Ctrl+W), so they act on whatever window has focus.
type Browser interface {
	// Open opens url in a new tab of the default browser.
	Open(url string) error
	// CloseTab closes the active tab and waits the configured settle delay.
	CloseTab()
	// CloseTabs closes n tabs one at a time with a short delay between
	// presses, so the browser keeps up.
	CloseTabs(n int)
	// Focus brings the browser to the foreground by opening and
	// immediately closing a throwaway tab on the landing page.
	Focus()
}

// Pointer synthesizes mouse input and observes real mouse input.
type Pointer interface {
	// Click moves to (x, y) and presses the primary button.
	Click(x, y int)
	// WaitForPress blocks until the user presses the primary button and
	// returns the press coordinates. Returns ctx.Err() if the context is
	// cancelled first.
	WaitForPress(ctx context.Context) (x, y int, err error)
}

// Screen captures the full screen as a pixel buffer.
type Screen interface {
	Capture() (image.Image, error)
}
