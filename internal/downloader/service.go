// Package downloader orchestrates the download run: it filters the
// collection against the progress ledger, acquires the click target (by
// human demonstration or template detection), walks the remaining mods one
// at a time, reclaims accumulated tabs in batches, and honors the emergency
// stop flag at every suspension point.
package downloader

import (
	"context"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexusdl/nexusdl/internal/automation"
	"github.com/nexusdl/nexusdl/internal/core/collection"
	"github.com/nexusdl/nexusdl/internal/core/config"
	"github.com/nexusdl/nexusdl/internal/core/ledger"
	"github.com/nexusdl/nexusdl/internal/core/logging"
	"github.com/nexusdl/nexusdl/internal/core/vision"
	"github.com/nexusdl/nexusdl/internal/nexus"
	"github.com/nexusdl/nexusdl/internal/printer"
)

// Stopper is the non-blocking cancellation poll. Implemented by
// automation.StopWatcher; tests substitute a fixed or scripted flag.
type Stopper interface {
	Stopped() bool
}

// Locator finds the click target on a screen capture. Implemented by
// vision.Detector.
type Locator interface {
	Available() bool
	Detect(screen image.Image) (vision.Match, bool)
}

// settle after closing the demonstration tab, before the automatic loop
// starts opening pages.
const postRecordDelay = time.Second

// Target is the screen coordinate clicked for every item once acquired.
type Target struct {
	X int
	Y int
}

// Service drives one download run. It is the only component with
// cross-cutting knowledge; everything it touches comes in through the
// constructor and the single Run call.
type Service struct {
	cfg     *config.Config
	ledger  *ledger.Ledger
	urls    *nexus.URLBuilder
	browser automation.Browser
	pointer automation.Pointer
	screen  automation.Screen
	locator Locator // nil = human-demonstration mode
	stop    Stopper
	out     *printer.Printer
	log     zerolog.Logger

	// sleep is swapped for a recorder in tests so runs are instant.
	sleep func(time.Duration)

	state  State
	target *Target
}

// NewService creates a Service. locator may be nil, which selects
// human-demonstration target acquisition.
func NewService(
	cfg *config.Config,
	led *ledger.Ledger,
	urls *nexus.URLBuilder,
	browser automation.Browser,
	pointer automation.Pointer,
	screen automation.Screen,
	locator Locator,
	stop Stopper,
	out *printer.Printer,
) *Service {
	return &Service{
		cfg:     cfg,
		ledger:  led,
		urls:    urls,
		browser: browser,
		pointer: pointer,
		screen:  screen,
		locator: locator,
		stop:    stop,
		out:     out,
		log:     logging.Component("downloader"),
		sleep:   time.Sleep,
		state:   StateIdle,
	}
}

// Run executes the download automation over sources, in collection order,
// skipping everything the ledger already records. The returned Report is
// valid for every outcome, including cancellation.
func (s *Service) Run(ctx context.Context, sources []collection.ModSource) (Report, error) {
	report := Report{Total: len(sources)}

	pending := make([]collection.ModSource, 0, len(sources))
	for _, src := range sources {
		if !s.ledger.IsCompleted(src) {
			pending = append(pending, src)
		}
	}
	report.AlreadyDone = report.Total - len(pending)

	s.log.Info().
		Int("total", report.Total).
		Int("already_done", report.AlreadyDone).
		Int("remaining", len(pending)).
		Msg("starting run")

	if len(pending) == 0 {
		s.setState(StateFinished)
		report.State = s.state
		s.out.Successf("All mods already downloaded!")
		return report, nil
	}

	s.setState(StateAcquiring)
	rest, err := s.acquireTarget(ctx, pending, &report)
	if err != nil {
		s.setState(StateAborted)
		report.State = s.state
		return report, err
	}

	s.setState(StateProcessing)
	s.processAll(rest, &report)

	if report.Cancelled {
		s.setState(StateAborted)
	} else {
		s.setState(StateFinished)
	}
	report.State = s.state
	return report, nil
}

// processAll runs the per-item cycle over the pending items, reclaiming
// accumulated tabs every batch-size cycles when auto-close is off. The
// batch counter is per-run: a restart mid-batch starts counting from zero.
func (s *Service) processAll(pending []collection.ModSource, report *Report) {
	autoClose := s.cfg.AutoCloseEnabled()
	sinceReclaim := 0

	for _, src := range pending {
		if s.stopRequested(report) {
			return
		}

		done, _ := s.ledger.Stats(report.Total)
		s.out.Infof("[%d/%d] Mod %d (File %d)", done+1, report.Total, src.ModID, src.FileID)

		if !s.processOne(src, report, &sinceReclaim) {
			return
		}

		if !autoClose && sinceReclaim >= s.cfg.BatchSize {
			s.reclaimBatch(sinceReclaim)
			sinceReclaim = 0
		}
	}

	// Any still-open tabs from a final partial batch.
	if !autoClose && sinceReclaim > 0 {
		s.reclaimBatch(sinceReclaim)
	}
}

// processOne opens, clicks, and records a single item. It returns false
// when the stop flag interrupted the cycle; a vision miss is a skip, not a
// stop. sinceReclaim counts opened tabs, so it advances even for skips.
func (s *Service) processOne(src collection.ModSource, report *Report, sinceReclaim *int) bool {
	url := s.urls.DownloadURL(src)
	_ = s.browser.Open(url)
	*sinceReclaim++

	if s.stopRequested(report) {
		return false
	}
	s.sleep(s.cfg.Delays.BeforeClickD())
	if s.stopRequested(report) {
		return false
	}

	x, y, ok := s.resolveTarget()
	if !ok {
		report.Skipped++
		s.log.Warn().Str("key", src.Key()).Msg("target not found, skipping item")
		s.out.Warnf("  Button not found, skipping %s", src.Key())
		return true
	}

	if s.cfg.ForceFocus {
		s.browser.Focus()
	}

	s.log.Debug().Int("x", x).Int("y", y).Str("key", src.Key()).Msg("clicking")
	s.pointer.Click(x, y)

	if s.cfg.AutoCloseEnabled() {
		s.sleep(s.cfg.Delays.DownloadD())
		s.browser.CloseTab()
	}

	s.sleep(s.cfg.Delays.BetweenModsD())

	if err := s.ledger.MarkCompleted(src); err != nil {
		// The click already fired; losing the mark only costs a
		// duplicate download on the next run.
		s.log.Error().Err(err).Str("key", src.Key()).Msg("failed to record progress")
	}
	report.Processed++
	report.LastKey = src.Key()
	return true
}

// resolveTarget returns the coordinate to click for the current item:
// the recorded position in human mode, a fresh detection in vision mode.
func (s *Service) resolveTarget() (int, int, bool) {
	if s.locator == nil {
		return s.target.X, s.target.Y, true
	}

	capture, err := s.screen.Capture()
	if err != nil {
		s.log.Error().Err(err).Msg("screen capture failed")
		return 0, 0, false
	}

	m, ok := s.locator.Detect(capture)
	if !ok {
		return 0, 0, false
	}
	s.log.Debug().Float64("confidence", m.Confidence).Msg("target detected")
	return m.X, m.Y, true
}

// reclaimBatch closes the accumulated tabs one at a time and restarts the
// browser at the neutral landing page. The next item then opens its own
// URL; the neutral reopen is a deliberate warm-up, not a shortcut.
func (s *Service) reclaimBatch(openTabs int) {
	s.setState(StateReclaiming)
	s.out.Infof("Closing %d accumulated tabs...", openTabs)

	// Let pending transfers start before their tabs disappear.
	s.sleep(s.cfg.Delays.DownloadD())
	s.browser.CloseTabs(openTabs)

	_ = s.browser.Open(s.urls.BaseURL())
	s.sleep(s.cfg.Delays.BrowserOpenD())

	s.setState(StateProcessing)
}

// stopRequested polls the cancellation flag and folds the outcome into the
// report. In-flight actions are never undone; only the next step is
// withheld.
func (s *Service) stopRequested(report *Report) bool {
	if !s.stop.Stopped() {
		return false
	}
	if !report.Cancelled {
		report.Cancelled = true
		s.log.Warn().Msg("stop requested, halting after current step")
		s.out.Warnf("Stopping as requested...")
	}
	return true
}

func (s *Service) setState(next State) {
	s.log.Debug().Str("from", string(s.state)).Str("to", string(next)).Msg("state transition")
	s.state = next
}
