package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration. It runs
// before any browser or pointer action, so a bad config never gets as far
// as opening a page.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		errs = errs.Append("base_url", fmt.Errorf("must start with http:// or https://, got %q", c.BaseURL))
	}
	if strings.TrimSpace(c.GameDomain) == "" {
		errs = errs.Append("game", fmt.Errorf("is required"))
	}
	if strings.ContainsAny(c.GameDomain, "/? ") {
		errs = errs.Append("game", fmt.Errorf("must be a bare domain slug, got %q", c.GameDomain))
	}
	if strings.TrimSpace(c.ProgressLog) == "" {
		errs = errs.Append("progress_file", fmt.Errorf("is required"))
	}
	if c.BatchSize < 1 {
		errs = errs.Append("batch_size", fmt.Errorf("must be at least 1, got %d", c.BatchSize))
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		errs = errs.Append("confidence", fmt.Errorf("must be in (0, 1], got %v", c.Confidence))
	}
	if c.Detect && strings.TrimSpace(c.Template) == "" {
		errs = errs.Append("template", fmt.Errorf("is required when detect is enabled"))
	}

	for _, d := range []struct {
		field string
		value float64
	}{
		{"delays.before_click", c.Delays.BeforeClick},
		{"delays.download", c.Delays.Download},
		{"delays.between_mods", c.Delays.BetweenMods},
		{"delays.tab_close", c.Delays.TabClose},
		{"delays.browser_open", c.Delays.BrowserOpen},
	} {
		if d.value < 0 {
			errs = errs.Append(d.field, fmt.Errorf("must not be negative"))
		}
	}

	return errs.ToError()
}
