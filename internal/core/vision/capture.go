package vision

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
)

// Region is the size of the area captured around a recorded click when
// bootstrapping a template.
type Region struct {
	Width  int
	Height int
}

// CaptureTemplate cuts a Region-sized rectangle centered on (x, y) out of
// the screen capture and saves it as the template at path.
//
// Capture never overwrites: if a file already exists at path it is a
// human-validated reference, the bytes are left untouched and the call
// succeeds with captured == false. The region is clamped to the screen
// bounds, so a click near an edge yields a smaller template rather than
// an error.
func CaptureTemplate(screen image.Image, x, y int, region Region, path string) (captured bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat template: %w", err)
	}

	if region.Width <= 0 || region.Height <= 0 {
		return false, fmt.Errorf("invalid capture region %dx%d", region.Width, region.Height)
	}

	b := screen.Bounds()
	left := max(b.Min.X, x-region.Width/2)
	top := max(b.Min.Y, y-region.Height/2)
	right := min(b.Max.X, left+region.Width)
	bottom := min(b.Max.Y, top+region.Height)
	if right <= left || bottom <= top {
		return false, fmt.Errorf("capture region (%d,%d) %dx%d is outside the screen", x, y, region.Width, region.Height)
	}

	crop := image.NewGray(image.Rect(0, 0, right-left, bottom-top))
	draw.Draw(crop, crop.Bounds(), screen, image.Pt(left, top), draw.Src)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create template dir: %w", err)
	}
	if err := encodePNG(path, crop); err != nil {
		return false, fmt.Errorf("save template: %w", err)
	}

	return true, nil
}
