package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusdl/nexusdl/internal/core/collection"
)

func src(modID, fileID int) collection.ModSource {
	return collection.ModSource{ModID: modID, FileID: fileID}
}

func TestNew_AbsentFileIsFresh(t *testing.T) {
	l, err := New(filepath.Join(t.TempDir(), "progress.txt"))
	require.NoError(t, err)

	assert.False(t, l.IsCompleted(src(1, 2)))

	completed, remaining := l.Stats(5)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 5, remaining)
}

func TestMarkCompleted_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.txt")

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.MarkCompleted(src(100, 200)))
	require.NoError(t, l.MarkCompleted(src(300, 400)))

	// Simulate a restart: a fresh ledger replays the file.
	l2, err := New(path)
	require.NoError(t, err)

	assert.True(t, l2.IsCompleted(src(100, 200)))
	assert.True(t, l2.IsCompleted(src(300, 400)))
	assert.False(t, l2.IsCompleted(src(100, 400)))
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.txt")

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.MarkCompleted(src(1, 2)))
	require.NoError(t, l.MarkCompleted(src(1, 2)))

	completed, _ := l.Stats(1)
	assert.Equal(t, 1, completed, "duplicate marks collapse in memory")

	// Duplicate lines also collapse on replay.
	l2, err := New(path)
	require.NoError(t, err)
	completed, remaining := l2.Stats(1)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, remaining)
}

func TestNew_SkipsBlankLinesAndWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.txt")
	require.NoError(t, os.WriteFile(path, []byte("1:2\n\n  3:4  \n\n"), 0o644))

	l, err := New(path)
	require.NoError(t, err)

	assert.True(t, l.IsCompleted(src(1, 2)))
	assert.True(t, l.IsCompleted(src(3, 4)))

	completed, _ := l.Stats(2)
	assert.Equal(t, 2, completed)
}

func TestMarkCompleted_AppendsNotTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.txt")

	l, err := New(path)
	require.NoError(t, err)
	require.NoError(t, l.MarkCompleted(src(1, 2)))
	require.NoError(t, l.MarkCompleted(src(3, 4)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1:2\n3:4\n", string(data))
}
