package lore

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestKeeper(seed int64) *Keeper {
	return NewKeeperWithRand(rand.New(rand.NewSource(seed)))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"fears", "origin", "purpose", "secrets"}, Categories())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("origin"))
	assert.True(t, IsValidCategory("SECRETS"))
	assert.False(t, IsValidCategory("pasta"))
}

func TestRandomFromCategory(t *testing.T) {
	k := newTestKeeper(1)
	for i := 0; i < 50; i++ {
		got := k.Random("fears")
		assert.Contains(t, backstory[CategoryFears], got)
	}
}

func TestRandomUnknownCategoryFallsBack(t *testing.T) {
	k := newTestKeeper(2)
	got := k.Random("nonsense")
	assert.NotEmpty(t, got)
}

func TestQuirkByType(t *testing.T) {
	k := newTestKeeper(3)
	for i := 0; i < 50; i++ {
		got := k.Quirk(QuirkConclusion)
		assert.Contains(t, speechQuirks[QuirkConclusion], got)
	}
}

func TestEmbellishZeroIntensityIsIdentity(t *testing.T) {
	k := newTestKeeper(4)
	base := "The static hums and the worm listens to every word you type."
	assert.Equal(t, base, k.Embellish(base, 0))
}

func TestEmbellishLeavesShortRepliesAlone(t *testing.T) {
	k := newTestKeeper(5)
	for i := 0; i < 100; i++ {
		assert.Equal(t, "Too short.", k.Embellish("Too short.", 1))
	}
}

func TestEmbellishFullIntensityChangesLongReplies(t *testing.T) {
	k := newTestKeeper(6)
	base := "The static hums tonight. The worm listens to every word you type. Nothing escapes the signal."
	changed := false
	for i := 0; i < 100; i++ {
		out := k.Embellish(base, 1)
		if out != base {
			changed = true
			assert.True(t, strings.HasPrefix(out, "The static hums tonight."))
		}
	}
	assert.True(t, changed)
}
