package speech

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrostlineTech/Marcus/internal/ai"
	"github.com/FrostlineTech/Marcus/internal/storage"
)

type fakeProvider struct {
	reply    string
	err      error
	requests [][]ai.Message
	opts     []ai.Options
}

func (f *fakeProvider) Generate(messages []ai.Message, opts ai.Options) (string, error) {
	f.requests = append(f.requests, messages)
	f.opts = append(f.opts, opts)
	return f.reply, f.err
}

func newTestComposer(t *testing.T, provider ai.Provider) *Composer {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewComposer(provider, store, WithRand(rand.New(rand.NewSource(7))))
}

func TestComposeUsesProviderReply(t *testing.T) {
	provider := &fakeProvider{reply: "The static remembers you."}
	c := newTestComposer(t, provider)

	got := c.Compose(context.Background(), "user-1", "hello marcus", "neutral", "neutral")
	assert.True(t, strings.HasPrefix(got, "**Marcus**: "))
	// The cryptic register may space words out, so compare ignoring spaces.
	assert.Contains(t, strings.ReplaceAll(got, " ", ""), "static")
}

func TestComposeFallsBackWhenProviderFails(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	c := newTestComposer(t, provider)

	got := c.Compose(context.Background(), "user-1", "hello", "neutral", "neutral")
	assert.True(t, strings.HasPrefix(got, "**Marcus**: "))
	assert.Greater(t, len(got), len("**Marcus**: "))

	// Three attempts, no more.
	assert.Len(t, provider.requests, 3)
}

func TestComposeCarriesConversationHistory(t *testing.T) {
	provider := &fakeProvider{reply: "Noted."}
	c := newTestComposer(t, provider)

	for i := 0; i < 7; i++ {
		c.Compose(context.Background(), "user-1", "message", "neutral", "neutral")
	}

	// History is capped at five exchanges: system + 5*2 + current message.
	last := provider.requests[len(provider.requests)-1]
	assert.Len(t, last, 1+maxHistoryLength*2+1)
	assert.Equal(t, "system", last[0].Role)
	assert.Equal(t, "user", last[len(last)-1].Role)
}

func TestComposeHistoryIsPerUser(t *testing.T) {
	provider := &fakeProvider{reply: "Noted."}
	c := newTestComposer(t, provider)

	c.Compose(context.Background(), "user-1", "first", "neutral", "neutral")
	c.Compose(context.Background(), "user-2", "other", "neutral", "neutral")

	last := provider.requests[len(provider.requests)-1]
	assert.Len(t, last, 2)
}

func TestSystemPromptIncludesMoodAndMemory(t *testing.T) {
	provider := &fakeProvider{reply: "Noted."}
	c := newTestComposer(t, provider)

	require.NoError(t, c.store.AppendUserMemory("user-1", "afraid of frogs"))
	c.Compose(context.Background(), "user-1", "hi", "cryptic", "cryptic")

	system := provider.requests[0][0].Content
	assert.Contains(t, system, "Current mood: cryptic")
	assert.Contains(t, system, "afraid of frogs")
}

func TestPromptedSkipsHistory(t *testing.T) {
	provider := &fakeProvider{reply: "Wisdom."}
	c := newTestComposer(t, provider)

	c.Compose(context.Background(), "user-1", "hi", "neutral", "neutral")
	c.Prompted(context.Background(), "Tell me something profound", "profound", "profound")

	last := provider.requests[len(provider.requests)-1]
	assert.Len(t, last, 2)
}

func TestTemperatureFollowsMood(t *testing.T) {
	provider := &fakeProvider{reply: "Noted."}
	c := newTestComposer(t, provider)

	c.Prompted(context.Background(), "x", "glitchy", "glitchy")
	c.Prompted(context.Background(), "x", "profound", "profound")
	c.Prompted(context.Background(), "x", "neutral", "neutral")

	assert.Equal(t, 0.9, provider.opts[0].Temperature)
	assert.Equal(t, 0.5, provider.opts[1].Temperature)
	assert.Equal(t, 0.7, provider.opts[2].Temperature)
}

func TestHasKeywordTrigger(t *testing.T) {
	assert.True(t, HasKeywordTrigger("have you tried the MOON JUICE?"))
	assert.True(t, HasKeywordTrigger("the backrooms are real"))
	assert.False(t, HasKeywordTrigger("what a lovely afternoon"))
}

func TestTriggerQuoteNeverEmpty(t *testing.T) {
	c := newTestComposer(t, &fakeProvider{reply: "x"})
	for i := 0; i < 100; i++ {
		assert.NotEmpty(t, c.TriggerQuote())
	}
}

func TestRoastAndComplimentAddressUser(t *testing.T) {
	c := newTestComposer(t, &fakeProvider{reply: "x"})
	assert.True(t, strings.HasPrefix(c.Roast("<@1>"), "<@1>, "))
	assert.True(t, strings.HasPrefix(c.Compliment("<@1>"), "<@1>, "))
}
