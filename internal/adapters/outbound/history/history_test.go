package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/domain"
)

func TestLoad_NoHistoryYet(t *testing.T) {
	entries, err := New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendThenLoad(t *testing.T) {
	dir := t.TempDir()
	h := New()

	first := domain.RunSummary{
		Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Total:     15, Passed: 15,
	}
	second := domain.RunSummary{
		Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		Total:     15, Passed: 13, Failed: 2,
		CommitHash: "abc123",
	}

	require.NoError(t, h.Append(dir, first))
	require.NoError(t, h.Append(dir, second))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestAppend_OldestEntriesRollOff(t *testing.T) {
	dir := t.TempDir()
	h := New()

	for i := 0; i < maxEntries+3; i++ {
		entry := domain.RunSummary{Total: 15, Passed: i, CommitHash: fmt.Sprintf("run-%d", i)}
		require.NoError(t, h.Append(dir, entry))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, maxEntries)
	assert.Equal(t, "run-3", entries[0].CommitHash)
	assert.Equal(t, fmt.Sprintf("run-%d", maxEntries+2), entries[maxEntries-1].CommitHash)
}
