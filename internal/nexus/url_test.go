package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexusdl/nexusdl/internal/core/collection"
)

func TestURLBuilder_DownloadURL(t *testing.T) {
	b := NewURLBuilder("https://www.nexusmods.com", "cyberpunk2077")

	got := b.DownloadURL(collection.ModSource{ModID: 107, FileID: 1135})

	assert.Equal(t, "https://www.nexusmods.com/cyberpunk2077/mods/107?tab=files&file_id=1135&nmm=1", got)
}

func TestURLBuilder_BaseURL(t *testing.T) {
	b := NewURLBuilder("https://www.nexusmods.com", "skyrimspecialedition")

	assert.Equal(t, "https://www.nexusmods.com", b.BaseURL())
}
