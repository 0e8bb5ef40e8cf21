package automation

import (
	"image"

	"github.com/go-vgo/robotgo"
)

// RobotScreen captures the primary display.
type RobotScreen struct{}

// Capture grabs the full screen as a pixel buffer.
func (RobotScreen) Capture() (image.Image, error) {
	return robotgo.CaptureImg()
}
