package vision

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoverPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"button.png", "button_hover.png"},
		{"templates/slow_download_button.png", "templates/slow_download_button_hover.png"},
		{"tpl.jpeg", "tpl_hover.jpeg"},
		{"noext", "noext_hover"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HoverPath(tt.in))
	}
}

func TestNewDetector_NoTemplates(t *testing.T) {
	d, err := NewDetector(filepath.Join(t.TempDir(), "missing.png"), 0.8)
	require.NoError(t, err, "absent templates are not an error")

	assert.False(t, d.Available())

	_, ok := d.Detect(noisyScreen(32, 32))
	assert.False(t, ok)
}

func TestDetector_FindsSavedTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.png")

	screen := noisyScreen(80, 60)
	tpl := crop(screen, image.Rect(30, 20, 50, 30))
	require.NoError(t, encodePNG(path, tpl))

	d, err := NewDetector(path, 0.8)
	require.NoError(t, err)
	require.True(t, d.Available())
	assert.Equal(t, 0.8, d.Threshold())

	m, ok := d.Detect(screen)
	require.True(t, ok)
	assert.Equal(t, 30+10, m.X)
	assert.Equal(t, 20+5, m.Y)
	assert.InDelta(t, 1.0, m.Confidence, 1e-6)
}

func TestDetector_HoverVariantFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.png")

	screen := noisyScreen(80, 60)

	// Only the hover variant matches what is on screen; the normal
	// template is unrelated noise.
	hoverTpl := crop(screen, image.Rect(10, 10, 26, 18))
	require.NoError(t, encodePNG(HoverPath(path), hoverTpl))

	unrelated := image.NewGray(image.Rect(0, 0, 16, 8))
	seed := uint32(99)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			seed = seed*22695477 + 1
			unrelated.SetGray(x, y, color.Gray{Y: uint8(seed >> 24)})
		}
	}
	require.NoError(t, encodePNG(path, unrelated))

	d, err := NewDetector(path, 0.8)
	require.NoError(t, err)

	m, ok := d.Detect(screen)
	require.True(t, ok)
	assert.Equal(t, 10+8, m.X)
	assert.Equal(t, 10+4, m.Y)
}

func TestDetector_BelowThresholdIsMiss(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.png")

	screen := noisyScreen(80, 60)
	tpl := crop(screen, image.Rect(30, 20, 50, 30))
	require.NoError(t, encodePNG(path, tpl))

	// An unrelated scene: the template is present nowhere.
	other := image.NewGray(image.Rect(0, 0, 80, 60))
	seed := uint32(7)
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			seed = seed*22695477 + 1
			other.SetGray(x, y, color.Gray{Y: uint8(seed >> 24)})
		}
	}

	d, err := NewDetector(path, 0.8)
	require.NoError(t, err)

	_, ok := d.Detect(other)
	assert.False(t, ok)
}

func TestDetector_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.png")

	d, err := NewDetector(path, 0.8)
	require.NoError(t, err)
	require.False(t, d.Available())

	screen := noisyScreen(40, 30)
	require.NoError(t, encodePNG(path, crop(screen, image.Rect(5, 5, 15, 13))))

	require.NoError(t, d.Reload())
	assert.True(t, d.Available())
}
