package automation

import (
	"context"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// RobotPointer synthesizes clicks with robotgo and records real presses
// from the shared input hub.
type RobotPointer struct {
	hub *Hub
}

// NewRobotPointer creates a pointer bound to the hub.
func NewRobotPointer(hub *Hub) *RobotPointer {
	return &RobotPointer{hub: hub}
}

// Click moves the cursor to (x, y) and presses the primary button.
func (p *RobotPointer) Click(x, y int) {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
}

// WaitForPress blocks until exactly one primary-button press occurs and
// returns its screen coordinates.
func (p *RobotPointer) WaitForPress(ctx context.Context) (int, int, error) {
	events, unsubscribe := p.hub.Subscribe()
	defer unsubscribe()

	left := hook.MouseMap["left"]

	for {
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return 0, 0, context.Canceled
			}
			if ev.Kind == hook.MouseDown && ev.Button == left {
				return int(ev.X), int(ev.Y), nil
			}
		}
	}
}
