package downloader

import "errors"

var (
	// ErrNoClickRecorded means the run ended before the user demonstrated
	// the download button. Nothing was marked completed.
	ErrNoClickRecorded = errors.New("no click recorded")

	// ErrTemplatesUnavailable means detection mode was requested but
	// neither the normal nor the hover template could be loaded.
	ErrTemplatesUnavailable = errors.New("no detection template available")
)
