// Package vision locates the download button on screen by template
// matching: a previously captured reference image (and an optional
// hover-state variant) is correlated against a screen capture, and the
// best-scoring position above a confidence threshold becomes the click
// target.
package vision

import (
	"fmt"
	"image"
	_ "image/jpeg" // registered so templates saved by other tools still load
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nexusdl/nexusdl/internal/core/logging"
)

// Detector matches the captured button templates against screen captures.
// Templates are loaded at construction and held read-only; Reload exists
// only for the capture bootstrap path.
type Detector struct {
	log          zerolog.Logger
	templatePath string
	threshold    float64

	normal *image.Gray
	hover  *image.Gray
}

// HoverPath derives the hover-variant path for a template:
// button.png -> button_hover.png.
func HoverPath(templatePath string) string {
	ext := filepath.Ext(templatePath)
	return strings.TrimSuffix(templatePath, ext) + "_hover" + ext
}

// NewDetector loads the template at templatePath and its hover variant.
// Either file may be absent; a detector with no template at all is still
// constructed but reports Available() == false.
func NewDetector(templatePath string, threshold float64) (*Detector, error) {
	d := &Detector{
		log:          logging.Component("vision"),
		templatePath: templatePath,
		threshold:    threshold,
	}
	if err := d.Reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads both template files from disk. Used after a template
// capture so matching sees the freshly written file.
func (d *Detector) Reload() error {
	normal, err := loadGray(d.templatePath)
	if err != nil {
		return fmt.Errorf("load template: %w", err)
	}
	hover, err := loadGray(HoverPath(d.templatePath))
	if err != nil {
		return fmt.Errorf("load hover template: %w", err)
	}

	d.normal, d.hover = normal, hover
	return nil
}

// Available reports whether at least one template is loaded. With neither
// present, detection is permanently "not found".
func (d *Detector) Available() bool {
	return d.normal != nil || d.hover != nil
}

// Threshold returns the configured confidence threshold.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Detect scans the screen capture for the button. Both templates are tried
// and the higher-confidence candidate above the threshold wins, the normal
// variant taking ties. Returns false when neither clears the threshold.
func (d *Detector) Detect(screen image.Image) (Match, bool) {
	if !d.Available() {
		return Match{}, false
	}

	gray := grayscale(screen)

	var normal, hover *Match
	if d.normal != nil {
		if m, ok := matchTemplate(gray, d.normal); ok {
			normal = &m
		}
	}
	if d.hover != nil {
		if m, ok := matchTemplate(gray, d.hover); ok {
			hover = &m
		}
	}

	m, ok := bestMatch(d.threshold, normal, hover)
	if !ok {
		ev := d.log.Debug()
		if normal != nil {
			ev = ev.Float64("normal_confidence", normal.Confidence)
		}
		if hover != nil {
			ev = ev.Float64("hover_confidence", hover.Confidence)
		}
		ev.Float64("threshold", d.threshold).Msg("no template cleared the threshold")
	}
	return m, ok
}

// loadGray reads an image file as grayscale. A missing file is not an
// error; it returns (nil, nil) so optional templates stay optional.
func loadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return grayscale(img), nil
}

// encodePNG is the single place templates are written, so capture and
// tests agree on the format.
func encodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
