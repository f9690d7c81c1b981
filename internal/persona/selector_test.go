package persona

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfanityOverridesEverything(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(1)))

	// Profound keywords present, but the profanity class wins outright.
	p, delay := s.Select("fuck you marcus, tell me about life and existence")
	assert.Equal(t, Rage, p)
	assert.Equal(t, 1.5, delay)
}

func TestProfanityScenario(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		p, delay := s.Select("fuck you marcus")
		assert.Equal(t, Rage, p)
		assert.Equal(t, 1.5, delay)
	}
}

func TestSweetTalkBranches(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(1)))

	sawNeutral, sawGlitchy := false, false
	for i := 0; i < 200; i++ {
		p, delay := s.Select("thank you marcus")
		switch p {
		case Neutral:
			sawNeutral = true
			assert.Equal(t, 2.0, delay)
		case Glitchy:
			sawGlitchy = true
			assert.Equal(t, 1.0, delay)
		default:
			t.Fatalf("unexpected persona %s for sweet talk", p)
		}
	}
	assert.True(t, sawNeutral)
	assert.True(t, sawGlitchy)
}

func TestKeywordScoringPicksDominantPersona(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(1)))

	// Five glitchy keywords max the match ratio: 12 + 5 beats every other
	// persona's ceiling regardless of the neutral baseline roll.
	p, _ := s.Select("the system threw an error, the code is corrupt, what a glitch in the program")
	assert.Equal(t, Glitchy, p)
}

func TestPlainMessageFallsToHighestBase(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(1)))

	// No keywords anywhere: base priorities alone decide and rage carries
	// the highest base. The neutral baseline tops out at 5 + 0.5*5.
	p, _ := s.Select("good morning everyone")
	assert.Equal(t, Rage, p)
}

func TestDelayFloor(t *testing.T) {
	s := NewSelectorWithRand(rand.New(rand.NewSource(3)))

	for i := 0; i < 500; i++ {
		_, delay := s.Select("hello there")
		assert.GreaterOrEqual(t, delay, 0.8)
	}
}

func TestFromMood(t *testing.T) {
	assert.Equal(t, Rage, FromMood("rage"))
	assert.Equal(t, Neutral, FromMood("neutral"))
	assert.Equal(t, Neutral, FromMood("nonsense"))
}
