package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrostlineTech/Marcus/pkg/retrylimit"
)

// The retry layer throttles on typed status errors.
var _ retrylimit.HTTPError = (*statusError)(nil)

func TestCleanReplyStripsThinkBlocks(t *testing.T) {
	got := cleanReply("<think>pondering the void</think>The void ponders back.")
	assert.Equal(t, "The void ponders back.", got)
}

func TestCleanReplyStripsWrappingQuotes(t *testing.T) {
	assert.Equal(t, "I see you.", cleanReply(`"I see you."`))
	assert.Equal(t, "I see you.", cleanReply("“I see you.”"))
	// Asymmetric quoting stays put.
	assert.Equal(t, `"I see you.`, cleanReply(`"I see you.`))
}

func TestCleanReplyCapsLength(t *testing.T) {
	got := cleanReply(strings.Repeat("a", maxReplyLength+500))
	assert.True(t, strings.HasSuffix(got, "[truncated]"))
	assert.LessOrEqual(t, len(got), maxReplyLength+len("\n\n[truncated]"))
}

func TestIsGarbageResponse(t *testing.T) {
	assert.True(t, isGarbageResponse("<html><body>502</body></html>"))
	assert.True(t, isGarbageResponse("This request is not allowed."))
	assert.True(t, isGarbageResponse("As an AI, I cannot stay in character."))
	assert.True(t, isGarbageResponse("ok"))
	assert.False(t, isGarbageResponse("This place is a dangerous place."))
}

func TestStatusErrorCarriesCode(t *testing.T) {
	err := &statusError{code: 429, body: "slow down"}
	assert.Equal(t, 429, err.StatusCode())
	assert.Contains(t, err.Error(), "429")
}
