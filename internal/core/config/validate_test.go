package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "base url without scheme",
			mutate:    func(c *Config) { c.BaseURL = "nexusmods.com" },
			wantField: "base_url",
		},
		{
			name:      "empty game",
			mutate:    func(c *Config) { c.GameDomain = "" },
			wantField: "game",
		},
		{
			name:      "game with path characters",
			mutate:    func(c *Config) { c.GameDomain = "cyberpunk2077/mods" },
			wantField: "game",
		},
		{
			name:      "empty progress file",
			mutate:    func(c *Config) { c.ProgressLog = "" },
			wantField: "progress_file",
		},
		{
			name:      "zero batch size",
			mutate:    func(c *Config) { c.BatchSize = 0 },
			wantField: "batch_size",
		},
		{
			name:      "confidence above one",
			mutate:    func(c *Config) { c.Confidence = 1.5 },
			wantField: "confidence",
		},
		{
			name:      "confidence zero",
			mutate:    func(c *Config) { c.Confidence = 0 },
			wantField: "confidence",
		},
		{
			name: "detect without template",
			mutate: func(c *Config) {
				c.Detect = true
				c.Template = ""
			},
			wantField: "template",
		},
		{
			name:      "negative delay",
			mutate:    func(c *Config) { c.Delays.Download = -1 },
			wantField: "delays.download",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "ftp://example.com"
	cfg.GameDomain = ""
	cfg.BatchSize = -1

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}
