package downloader

import (
	"context"
	"time"

	"github.com/nexusdl/nexusdl/internal/core/collection"
)

// stopPollInterval is how often the blocking click recorder re-checks the
// stop flag. The recorder is the one place the orchestrator blocks on the
// user, so it cannot rely on the usual between-step polls.
const stopPollInterval = 100 * time.Millisecond

// acquireTarget establishes the click target and returns the items still
// to be processed.
//
// Human mode: the first pending item's page is opened and the user's next
// primary-button press becomes the fixed target for the whole run. The
// demonstration click is that item's processing, so the item is marked
// completed and excluded from the returned slice. No press means nothing
// is marked and the run aborts.
//
// Vision mode: templates must be loadable up front; the actual detection
// happens per item in resolveTarget, so all pending items are returned.
func (s *Service) acquireTarget(ctx context.Context, pending []collection.ModSource, report *Report) ([]collection.ModSource, error) {
	if s.locator != nil {
		if !s.locator.Available() {
			return nil, ErrTemplatesUnavailable
		}
		return pending, nil
	}

	first := pending[0]

	s.out.Headerf("CLICK RECORDING")
	s.out.Infof("First page will open...")
	s.out.Infof("CLICK on the 'SLOW DOWNLOAD' button; the position will be recorded.")

	_ = s.browser.Open(s.urls.DownloadURL(first))
	s.sleep(s.cfg.Delays.BeforeClickD())

	x, y, err := s.waitForDemonstration(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("click recording ended without a press")
		return nil, ErrNoClickRecorded
	}

	s.target = &Target{X: x, Y: y}
	s.log.Info().Int("x", x).Int("y", y).Msg("click position recorded")
	s.out.Successf("Click recorded at (%d, %d)", x, y)

	if err := s.ledger.MarkCompleted(first); err != nil {
		s.log.Error().Err(err).Str("key", first.Key()).Msg("failed to record progress")
	}
	report.Processed++
	report.LastKey = first.Key()

	s.browser.CloseTab()
	s.sleep(postRecordDelay)

	return pending[1:], nil
}

// waitForDemonstration blocks for the user's press while keeping the stop
// key responsive: the wait context is cancelled as soon as the stop flag
// flips, since no between-step poll runs while we block.
func (s *Service) waitForDemonstration(ctx context.Context) (int, int, error) {
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(stopPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-waitCtx.Done():
				return
			case <-ticker.C:
				if s.stop.Stopped() {
					cancel()
					return
				}
			}
		}
	}()

	return s.pointer.WaitForPress(waitCtx)
}
