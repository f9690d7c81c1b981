package mood

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTransitionRowsSumBelowOne(t *testing.T) {
	for state, row := range moodTransitions {
		sum := 0.0
		for _, tp := range row {
			sum += tp.prob
		}
		assert.LessOrEqual(t, sum, 1.0, "row for %s", state)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("glitchy")
	require.NoError(t, err)
	assert.Equal(t, Glitchy, s)

	_, err = Parse("euphoric")
	assert.ErrorIs(t, err, ErrInvalidMood)
}

func TestForceValidMood(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))

	require.NoError(t, e.Force(Rage))
	assert.Equal(t, Rage, e.Current())
}

func TestForceInvalidMoodLeavesEngineUnchanged(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))
	before := e.Current()

	err := e.Force(State("euphoric"))
	assert.ErrorIs(t, err, ErrInvalidMood)
	assert.Equal(t, before, e.Current())
}

func TestInfluenceFullStrengthAlwaysSwitches(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))

	require.NoError(t, e.Influence(Profound, 1.0))
	assert.Equal(t, Profound, e.Current())
}

func TestInfluenceZeroStrengthNeverSwitches(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, e.Force(Neutral))

	require.NoError(t, e.Influence(Rage, 0.0))
	assert.Equal(t, Neutral, e.Current())
}

func TestInfluenceInvalidMood(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Influence(State("bogus"), 0.5), ErrInvalidMood)
}

// A single-entry row {A -> B: 0.5} must send every roll at 0.3 to B and keep
// every roll at 0.7 in A.
func TestSelectNextCumulativeWalk(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))
	e.transitions = map[State][]transitionProb{
		Neutral: {{Glitchy, 0.5}},
	}
	e.current = Neutral

	for i := 0; i < 1000; i++ {
		assert.Equal(t, Glitchy, e.selectNext(0.3))
		assert.Equal(t, Neutral, e.selectNext(0.7))
	}
}

func TestSelectNextStableOrder(t *testing.T) {
	e := NewEngine()
	e.current = Rage

	// Rage row starts with neutral at 0.3; a roll inside that band always
	// picks the first entry, never a later one.
	assert.Equal(t, Neutral, e.selectNext(0.25))
	// 0.3 + 0.1 band belongs to cryptic.
	assert.Equal(t, Cryptic, e.selectNext(0.35))
	// Residual mass keeps the current mood.
	assert.Equal(t, Rage, e.selectNext(0.95))
}

func TestCurrentLazyTransition(t *testing.T) {
	start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	now := start
	e := NewEngine(
		WithRand(rand.New(rand.NewSource(7))),
		WithClock(func() time.Time { return now }),
	)
	require.NoError(t, e.Force(Neutral))

	// Within the sojourn nothing moves.
	now = now.Add(time.Second)
	assert.Equal(t, Neutral, e.Current())

	// Past the longest possible neutral sojourn a transition must have been
	// evaluated; whatever the outcome, the schedule is reset into the future.
	now = now.Add(11 * time.Minute)
	e.Current()
	assert.True(t, e.nextTransitionAt.After(now))
}

func TestSojournDeterministicWhenMinEqualsMax(t *testing.T) {
	e := NewEngine(WithRand(rand.New(rand.NewSource(1))))
	e2 := NewEngine(WithRand(rand.New(rand.NewSource(2))))

	saved := moodDurations[Rage]
	moodDurations[Rage] = durationRange{time.Minute, time.Minute}
	defer func() { moodDurations[Rage] = saved }()

	assert.Equal(t, time.Minute, e.sojourn(Rage))
	assert.Equal(t, time.Minute, e2.sojourn(Rage))
}
