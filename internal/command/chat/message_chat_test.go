package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessageShortStaysWhole(t *testing.T) {
	parts := splitMessage("hello there", 2000)
	assert.Equal(t, []string{"hello there"}, parts)
}

func TestSplitMessagePrefersNewlineCut(t *testing.T) {
	msg := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 50)
	parts := splitMessage(msg, 60)
	assert.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 50), parts[0])
	assert.Equal(t, strings.Repeat("b", 50), parts[1])
}

func TestSplitMessageHardCutWithoutNewline(t *testing.T) {
	msg := strings.Repeat("x", 4500)
	parts := splitMessage(msg, 2000)
	assert.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 2000)
	}
	assert.Equal(t, msg, strings.Join(parts, ""))
}

func TestSplitMessageEmpty(t *testing.T) {
	assert.Empty(t, splitMessage("", 2000))
}

func TestRageOverridesReplyOnlyAtHighTiers(t *testing.T) {
	// Insults below tier four escalate the counter but must not swallow
	// the conversation; the compose path still answers.
	for level := 0; level <= 3; level++ {
		assert.False(t, rageOverridesReply(level), "level %d", level)
	}
	assert.True(t, rageOverridesReply(4))
	assert.True(t, rageOverridesReply(5))
}

func TestTruncateLog(t *testing.T) {
	assert.Equal(t, "short", truncateLog("  short  ", 10))
	assert.Equal(t, "abcde...", truncateLog("abcdefgh", 5))
}
