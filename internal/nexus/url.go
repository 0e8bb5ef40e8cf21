// Package nexus builds Nexus Mods URLs.
package nexus

import (
	"fmt"

	"github.com/nexusdl/nexusdl/internal/core/collection"
)

// URLBuilder builds download page URLs for one game domain.
type URLBuilder struct {
	baseURL    string
	gameDomain string
}

// NewURLBuilder creates a URL builder for the given base URL and game
// domain (e.g. "cyberpunk2077").
func NewURLBuilder(baseURL, gameDomain string) *URLBuilder {
	return &URLBuilder{baseURL: baseURL, gameDomain: gameDomain}
}

// DownloadURL returns the files-tab URL that exposes the manual download
// button for the given mod file. nmm=1 selects the mod-manager layout the
// click target was calibrated against.
func (b *URLBuilder) DownloadURL(src collection.ModSource) string {
	return fmt.Sprintf("%s/%s/mods/%d?tab=files&file_id=%d&nmm=1",
		b.baseURL, b.gameDomain, src.ModID, src.FileID)
}

// BaseURL returns the neutral landing page, used to warm the browser back
// up after a batch tab close.
func (b *URLBuilder) BaseURL() string {
	return b.baseURL
}
