// Package ledger tracks completed downloads across runs.
//
// The ledger is an in-memory set of completed keys backed by a
// newline-delimited append log. The log is the source of truth for resume:
// a crash mid-run loses at most the in-flight item's record, never prior
// ones. Keys are only ever added; deleting the file (nexusdl reset) is the
// only supported way to start over.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nexusdl/nexusdl/internal/core/collection"
)

// Ledger is the persisted record of completed mod keys.
type Ledger struct {
	path string
	done map[string]struct{}
}

// New opens the ledger at path. An absent file means a fresh run; an
// existing file is replayed line by line, duplicate lines collapsing under
// set semantics.
func New(path string) (*Ledger, error) {
	l := &Ledger{
		path: path,
		done: make(map[string]struct{}),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open progress file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		l.done[key] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}

	return l, nil
}

// IsCompleted reports whether the mod was already downloaded. No side effect.
func (l *Ledger) IsCompleted(src collection.ModSource) bool {
	_, ok := l.done[src.Key()]
	return ok
}

// MarkCompleted records the mod as downloaded, both in memory and in the
// append log. The file handle is opened and closed per call so writes are
// durable at item granularity. Marking the same key twice is harmless: the
// duplicate line collapses on the next replay.
func (l *Ledger) MarkCompleted(src collection.ModSource) error {
	key := src.Key()
	l.done[key] = struct{}{}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open progress file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintln(f, key); err != nil {
		return fmt.Errorf("append progress entry: %w", err)
	}

	return nil
}

// Stats derives (completed, remaining) counts for a collection of the given
// total size.
func (l *Ledger) Stats(total int) (completed, remaining int) {
	completed = len(l.done)
	return completed, total - completed
}

// Path returns the location of the backing log file.
func (l *Ledger) Path() string {
	return l.path
}
