package rage

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/storage"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewTracker(store, WithRand(rand.New(rand.NewSource(42))))
}

func TestCalmMessageLeavesLevelAtZero(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "hello marcus, how is the void today?")
	require.NoError(t, err)
	assert.False(t, out.Triggered)
	assert.False(t, out.SweetTalked)
	assert.Equal(t, 0, out.Level)
}

func TestSingleTriggerIncrementsByOne(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "marcus you are so annoying")
	require.NoError(t, err)
	assert.True(t, out.Triggered)
	assert.Equal(t, 1, out.Increment)
	assert.Equal(t, 1, out.Level)
}

func TestStrongTriggerIncrementsByTwo(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "fuck you marcus")
	require.NoError(t, err)
	assert.True(t, out.Triggered)
	assert.Equal(t, 2, out.Increment)
	assert.Equal(t, 2, out.Level)
}

func TestMultipleStrongTriggersStack(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "fuck you marcus, i stole jimbo james")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Increment)
	assert.Equal(t, 3, out.Level)
}

func TestLevelClampsAtFive(t *testing.T) {
	tr := newTestTracker(t)

	for i := 0; i < 10; i++ {
		out, err := tr.Evaluate("user-1", "marcus shut up")
		require.NoError(t, err)
		assert.LessOrEqual(t, out.Level, 5)
	}
	assert.Equal(t, 5, tr.Level("user-1"))
}

func TestSweetTalkDeescalatesAndSuppressesTrigger(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.Evaluate("user-1", "fuck you marcus")
	require.NoError(t, err)
	require.Equal(t, 2, tr.Level("user-1"))

	// Kindness and hostility in one message: kindness wins.
	out, err := tr.Evaluate("user-1", "sorry marcus, but you are still annoying")
	require.NoError(t, err)
	assert.True(t, out.SweetTalked)
	assert.False(t, out.Triggered)
	assert.Equal(t, 1, out.Level)
}

func TestSweetTalkAtZeroDoesNotGoNegative(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "thank you marcus")
	require.NoError(t, err)
	assert.False(t, out.SweetTalked)
	assert.Equal(t, 0, out.Level)
	assert.Equal(t, 0, tr.Level("user-1"))
}

func TestRepeatOffenderBonus(t *testing.T) {
	tr := newTestTracker(t)

	// First four hostile messages carry no bonus.
	for i := 0; i < 4; i++ {
		out, err := tr.Evaluate("user-1", "marcus shut up")
		require.NoError(t, err)
		assert.Equal(t, 1, out.Increment)
	}

	out, err := tr.Evaluate("user-1", "marcus shut up")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Increment)
}

func TestRepeatOffenderWindowExpires(t *testing.T) {
	current := time.Now()
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	tr := NewTracker(store,
		WithRand(rand.New(rand.NewSource(42))),
		WithClock(func() time.Time { return current }),
	)

	for i := 0; i < 5; i++ {
		_, err := tr.Evaluate("user-1", "marcus shut up")
		require.NoError(t, err)
	}

	// A week later the old offenses no longer count.
	current = current.Add(8 * 24 * time.Hour)
	out, err := tr.Evaluate("user-1", "marcus shut up")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Increment)
}

func TestMoodCouplingAtHighLevels(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "fuck you marcus, i hate rigatoni pasta")
	require.NoError(t, err)
	require.Equal(t, 3, out.Level)
	assert.Equal(t, mood.State(""), out.MoodForce)
	assert.Equal(t, 0.4, out.MoodInfluence)

	out, err = tr.Evaluate("user-1", "marcus shut up")
	require.NoError(t, err)
	require.GreaterOrEqual(t, out.Level, 4)
	assert.Equal(t, mood.Rage, out.MoodForce)
}

func TestEscalationScenario(t *testing.T) {
	tr := newTestTracker(t)

	out, err := tr.Evaluate("user-1", "fuck you marcus, i stole jimbo james")
	require.NoError(t, err)
	require.Equal(t, 3, out.Level)

	out, err = tr.Evaluate("user-1", "fuck you marcus, i hate rigatoni pasta")
	require.NoError(t, err)
	assert.Equal(t, 5, out.Level)

	for i := 0; i < 10; i++ {
		_, err = tr.Evaluate("user-1", "sorry marcus")
		require.NoError(t, err)
	}
	assert.Equal(t, 0, tr.Level("user-1"))
}

func TestRespondFormatsPlaceholders(t *testing.T) {
	tr := newTestTracker(t)

	for i := 0; i < 200; i++ {
		got := tr.Respond(4, "Dave", "<@1>", false)
		assert.NotContains(t, got, "{user}")
		assert.NotContains(t, got, "{USER}")
		assert.True(t, strings.HasPrefix(got, "<@1> "))
		assert.True(t, strings.HasSuffix(got, "😡😡"))
	}
}

func TestRespondTierTwoUsesDisplayName(t *testing.T) {
	tr := newTestTracker(t)

	got := tr.Respond(2, "Dave", "<@1>", false)
	assert.True(t, strings.HasPrefix(got, "Dave, "))
}

func TestRespondAppendsAngryLineAtTierThreeAndUp(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var calls []string
	tr := NewTracker(store,
		WithRand(rand.New(rand.NewSource(42))),
		WithAngryLine(func(displayName string) string {
			calls = append(calls, displayName)
			return "You will regret this, " + displayName + "."
		}),
	)

	got := tr.Respond(3, "Dave", "<@1>", false)
	assert.Contains(t, got, "You will regret this, Dave.")
	assert.Equal(t, []string{"Dave"}, calls)

	calls = nil
	tr.Respond(2, "Dave", "<@1>", false)
	assert.Empty(t, calls, "low tiers should not call the generator")
}

func TestRespondSkipsEmptyAngryLine(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tr := NewTracker(store,
		WithRand(rand.New(rand.NewSource(42))),
		WithAngryLine(func(string) string { return "" }),
	)

	got := tr.Respond(3, "Dave", "<@1>", false)
	assert.NotContains(t, got, "  ")
	assert.NotEmpty(t, got)
}

func TestRespondForceGlitchCorrupts(t *testing.T) {
	tr := newTestTracker(t)

	got := tr.Respond(1, "Dave", "<@1>", true)
	assert.True(t, strings.HasPrefix(got, "<@1> "))

	combining := 0
	for _, r := range got {
		if r >= 0x0300 && r <= 0x036F {
			combining++
		}
	}
	assert.Greater(t, combining, 0)
}
