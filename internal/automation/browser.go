package automation

import (
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/nexusdl/nexusdl/internal/core/logging"
)

// batchCloseDelay paces Ctrl+W presses during bulk closes; slower browsers
// drop key events when tabs close faster than this.
const batchCloseDelay = 100 * time.Millisecond

// TabBrowser drives the user's default browser: pages open through the OS
// URL handler, tabs close through synthesized Ctrl+W.
type TabBrowser struct {
	log      zerolog.Logger
	baseURL  string
	tabClose time.Duration
}

// NewTabBrowser creates a TabBrowser. tabClose is the settle delay after a
// single tab close; baseURL is the landing page used by Focus.
func NewTabBrowser(baseURL string, tabClose time.Duration) *TabBrowser {
	return &TabBrowser{
		log:      logging.Component("browser"),
		baseURL:  baseURL,
		tabClose: tabClose,
	}
}

// Open opens url in a new tab of the default browser. Failures are logged
// and swallowed: the orchestrator cannot distinguish a failed open from a
// slow one anyway, and the ledger keeps a missed item re-runnable.
func (b *TabBrowser) Open(url string) error {
	if err := browser.OpenURL(url); err != nil {
		b.log.Error().Err(err).Str("url", url).Msg("failed to open url")
		return err
	}
	return nil
}

// CloseTab closes the active tab with Ctrl+W and waits the settle delay.
func (b *TabBrowser) CloseTab() {
	_ = robotgo.KeyTap("w", "ctrl")
	time.Sleep(b.tabClose)
}

// CloseTabs closes n tabs one at a time.
func (b *TabBrowser) CloseTabs(n int) {
	for range n {
		_ = robotgo.KeyTap("w", "ctrl")
		time.Sleep(batchCloseDelay)
	}
}

// Focus brings the browser to the foreground by opening a throwaway tab on
// the landing page and closing it again.
func (b *TabBrowser) Focus() {
	_ = b.Open(b.baseURL)
	time.Sleep(batchCloseDelay)
	b.CloseTab()
}
