package ai

import (
	"regexp"
	"strings"
)

const maxReplyLength = 2800

var thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// quotePairs are wrapping quotes the model sometimes puts around a whole
// reply. Only symmetric wrapping is stripped.
var quotePairs = [][2]string{
	{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"‘", "’"},
}

// isGarbageResponse flags replies not worth sending: error pages, refusal
// boilerplate, character breaks, or near-empty output.
func isGarbageResponse(s string) bool {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "<html"):
		return true
	case strings.Contains(l, "not allowed"):
		return true
	case strings.Contains(l, "as an ai"):
		return true
	case len(strings.TrimSpace(s)) < 5:
		return true
	}
	return false
}

func truncate(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}

// cleanReply strips think blocks and symmetric wrapping quotes, and caps
// the reply length.
func cleanReply(reply string) string {
	reply = thinkBlockPattern.ReplaceAllString(reply, "")
	reply = strings.TrimSpace(reply)

	for _, q := range quotePairs {
		if len(reply) >= 2 && strings.HasPrefix(reply, q[0]) && strings.HasSuffix(reply, q[1]) {
			reply = strings.TrimSuffix(strings.TrimPrefix(reply, q[0]), q[1])
			reply = strings.TrimSpace(reply)
			break
		}
	}

	if len(reply) > maxReplyLength {
		reply = reply[:maxReplyLength] + "\n\n[truncated]"
	}
	return reply
}
