package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRageStartsAtZero(t *testing.T) {
	store := newTestStorage(t)

	level, err := store.GetRage("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestIncrementRageClampsAtMax(t *testing.T) {
	store := newTestStorage(t)

	level, err := store.IncrementRage("user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, level)

	level, err = store.IncrementRage("user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, MaxRage, level)
}

func TestDecrementRageFloorsAtZero(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 2)
	require.NoError(t, err)

	level, err := store.DecrementRage("user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestRageLevelsAreIndependentPerUser(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 4)
	require.NoError(t, err)

	level, err := store.GetRage("user-2")
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}

func TestSweepStaleRageNoopWhenFresh(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 3)
	require.NoError(t, err)

	cooled, err := store.SweepStaleRage(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, cooled)

	level, err := store.GetRage("user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, level)
}

func TestSweepStaleRageDecrementsOldEntries(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 3)
	require.NoError(t, err)

	// Sweep with a zero threshold so the fresh entry counts as stale.
	cooled, err := store.SweepStaleRage(-time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, cooled)

	level, err := store.GetRage("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, level)
}

func TestSweepSkipsZeroLevels(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 1)
	require.NoError(t, err)
	_, err = store.DecrementRage("user-1", 1)
	require.NoError(t, err)

	cooled, err := store.SweepStaleRage(-time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, cooled)
}

func TestTouchRageRefreshesLastUpdated(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.IncrementRage("user-1", 2)
	require.NoError(t, err)

	records, err := store.AllRageRecords()
	require.NoError(t, err)
	before := records["user-1"].LastUpdated

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.TouchRage("user-1"))

	records, err = store.AllRageRecords()
	require.NoError(t, err)
	assert.True(t, records["user-1"].LastUpdated.After(before))

	level, err := store.GetRage("user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, level)
}

func TestTouchRageIgnoresUnknownUsers(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.TouchRage("ghost"))

	records, err := store.AllRageRecords()
	require.NoError(t, err)
	assert.NotContains(t, records, "ghost")
}

func TestUserMemoryAppendAndTrim(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.AppendUserMemory("user-1", "likes pasta"))
	require.NoError(t, store.AppendUserMemory("user-1", "fears the void"))

	blob, err := store.GetUserMemory("user-1")
	require.NoError(t, err)
	assert.Equal(t, "likes pasta\nfears the void", blob)

	long := make([]rune, 600)
	for i := range long {
		long[i] = 'x'
	}
	require.NoError(t, store.AppendUserMemory("user-1", string(long)))

	blob, err = store.GetUserMemory("user-1")
	require.NoError(t, err)
	assert.Len(t, []rune(blob), 500)
}

func TestClearUserMemory(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.AppendUserMemory("user-1", "something"))
	require.NoError(t, store.ClearUserMemory("user-1"))

	blob, err := store.GetUserMemory("user-1")
	require.NoError(t, err)
	assert.Empty(t, blob)
}

func TestDisabledGroups(t *testing.T) {
	store := newTestStorage(t)

	disabled, err := store.IsGroupDisabled("guild-1", "rage")
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, store.DisableGroup("guild-1", "rage"))
	require.NoError(t, store.DisableGroup("guild-1", "rage")) // idempotent

	disabled, err = store.IsGroupDisabled("guild-1", "rage")
	require.NoError(t, err)
	assert.True(t, disabled)

	groups, err := store.GetDisabledGroups("guild-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rage"}, groups)

	require.NoError(t, store.EnableGroup("guild-1", "rage"))
	disabled, err = store.IsGroupDisabled("guild-1", "rage")
	require.NoError(t, err)
	assert.False(t, disabled)
}

func TestCommandHistoryKeepsRecentEntries(t *testing.T) {
	store := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := store.AppendCommandToHistory("guild-1", CommandHistoryRecord{
			UserID:   "user-1",
			Command:  "mood",
			Datetime: time.Now(),
		})
		require.NoError(t, err)
	}

	history, err := store.FetchCommandHistory("guild-1")
	require.NoError(t, err)
	assert.Len(t, history, commandHistoryLimit)
}
