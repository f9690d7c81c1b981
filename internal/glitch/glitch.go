// Package glitch distorts outbound text to match Marcus's mood register.
// Every transform is stateless over an injectable random source; exactly one
// register is applied per output, chosen by mood. Raw input is sanitized
// before any mutation runs.
package glitch

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Placeholder replaces output that sanitization reduced to nothing. Marcus
// never goes silent.
const Placeholder = "...the static swallowed my words."

const speakerPrefix = "**Marcus**: "

var glitchChars = []rune{'#', '@', '&', '$', '%', '!', '?', '*', '~', '`', '_', '|', '/'}

var crypticSymbols = []string{"⌀", "◊", "∞", "⧫", "⧖", "⚭"}

var profoundWords = []string{
	"existence", "reality", "consciousness", "time", "void", "entropy",
	"universe", "perception", "truth", "illusion", "being", "eternity",
}

var (
	codeFencePattern = regexp.MustCompile("```\\w*\\n|```")
	thinkPattern     = regexp.MustCompile(`(?s)<think>.*?</think>`)
	tagPattern       = regexp.MustCompile(`<.*?>`)
	labelPattern     = regexp.MustCompile(`^\s*Marcus:\s*`)
	markupPattern    = regexp.MustCompile("\\*\\*|\\*|__|_|~~|`")
)

// Mutator applies mood-register transforms. Zero-value intensity knobs come
// from the original tuning; only the random source varies.
type Mutator struct {
	rng *rand.Rand
}

func NewMutator() *Mutator {
	return &Mutator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewMutatorWithRand(rng *rand.Rand) *Mutator {
	return &Mutator{rng: rng}
}

// Format sanitizes raw generated text and applies the register for the given
// mood. Unknown moods and neutral both land on the cryptic register, which
// keeps the voice consistent. The result always carries the speaker prefix
// and is never empty.
func (m *Mutator) Format(text, mood string) string {
	cleaned := Sanitize(text)
	if cleaned == "" {
		return speakerPrefix + Placeholder
	}

	var out string
	switch mood {
	case "glitchy":
		out = m.Glitchy(cleaned, 0.3)
	case "profound":
		out = m.Profound(cleaned)
	case "rage":
		out = m.Rage(cleaned)
	default:
		out = m.Cryptic(cleaned)
	}

	if strings.TrimSpace(out) == "" {
		out = Placeholder
	}
	return speakerPrefix + out
}

// Sanitize strips markup artifacts the model tends to emit: code fences,
// think blocks, pseudo-HTML tags, a leading speaker label, and markdown
// tokens. Runs before mutation, never after.
func Sanitize(text string) string {
	text = codeFencePattern.ReplaceAllString(text, "")
	text = thinkPattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")
	text = labelPattern.ReplaceAllString(text, "")
	text = markupPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Corrupt appends a combining mark after each character with probability
// intensity * 0.7.
func (m *Mutator) Corrupt(word string, intensity float64) string {
	var b strings.Builder
	for _, c := range word {
		b.WriteRune(c)
		if m.rng.Float64() < intensity*0.7 {
			b.WriteRune(rune(0x0300 + m.rng.Intn(0x036F-0x0300)))
		}
	}
	return b.String()
}

// Repeat duplicates a random substring of the word 2 to 4 times in place.
func (m *Mutator) Repeat(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	repeatLen := 1 + m.rng.Intn(max(1, len(runes)/2))
	if repeatLen > len(runes) {
		repeatLen = len(runes)
	}
	start := m.rng.Intn(len(runes) - repeatLen + 1)
	part := string(runes[start : start+repeatLen])
	count := 2 + m.rng.Intn(3)
	return string(runes[:start]) + strings.Repeat(part, count) + string(runes[start+repeatLen:])
}

// Substitute swaps characters for glitch glyphs with probability
// intensity * 0.5 each.
func (m *Mutator) Substitute(word string, intensity float64) string {
	runes := []rune(word)
	for i := range runes {
		if m.rng.Float64() < intensity*0.5 {
			runes[i] = glitchChars[m.rng.Intn(len(glitchChars))]
		}
	}
	return string(runes)
}

// Glitchy runs the corrupted-speech register: each word independently rolls
// against intensity and, when hit, takes one of the three word transforms.
// Long outputs sometimes get a full corruption break inserted mid-stream.
func (m *Mutator) Glitchy(text string, intensity float64) string {
	words := strings.Fields(text)
	for i, word := range words {
		if m.rng.Float64() >= intensity {
			continue
		}
		switch m.rng.Intn(3) {
		case 0:
			words[i] = m.Corrupt(word, intensity)
		case 1:
			words[i] = m.Repeat(word)
		case 2:
			words[i] = m.Substitute(word, intensity)
		}
	}

	if len(words) > 5 && m.rng.Float64() < intensity*2 {
		pos := 1 + m.rng.Intn(len(words)-1)
		n := 3 + m.rng.Intn(6)
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteRune(glitchChars[m.rng.Intn(len(glitchChars))])
		}
		words = append(words[:pos], append([]string{b.String()}, words[pos:]...)...)
	}

	return strings.Join(words, " ")
}

// Profound inserts dramatic ellipses after a bounded number of sentence
// breaks and emphasizes the profound vocabulary wherever it appears as a
// whole word.
func (m *Mutator) Profound(text string) string {
	n := 1 + m.rng.Intn(3)
	for i := 0; i < n; i++ {
		text = strings.Replace(text, ". ", "... ", 1)
	}

	lower := strings.ToLower(text)
	for _, word := range profoundWords {
		if !strings.Contains(lower, word) {
			continue
		}
		pattern := regexp.MustCompile(`(?i)\b` + word + `\b`)
		text = pattern.ReplaceAllStringFunc(text, func(s string) string {
			return "*" + s + "*"
		})
	}
	return text
}

// Cryptic brackets some sentences with symbols, occasionally spaces out a
// short run of words, occasionally drops an ellipsis mid-sentence.
func (m *Mutator) Cryptic(text string) string {
	sentences := strings.Split(text, ". ")
	for i := range sentences {
		if m.rng.Float64() < 0.3 {
			sym := crypticSymbols[m.rng.Intn(len(crypticSymbols))]
			if m.rng.Float64() < 0.5 {
				sentences[i] = sym + " " + sentences[i]
			} else {
				sentences[i] = sentences[i] + " " + sym
			}
		}
	}
	text = strings.Join(sentences, ". ")

	if m.rng.Float64() < 0.2 && len(text) > 20 {
		words := strings.Fields(text)
		if len(words) > 3 {
			start := m.rng.Intn(len(words) - 3)
			count := 1 + m.rng.Intn(min(3, len(words)-start))
			for i := start; i < start+count; i++ {
				words[i] = spaceOut(words[i])
			}
			text = strings.Join(words, " ")
		}
	}

	if m.rng.Float64() < 0.25 {
		words := strings.Fields(text)
		if len(words) > 2 {
			pos := 1 + m.rng.Intn(len(words)-1)
			words = append(words[:pos], append([]string{"..."}, words[pos:]...)...)
			text = strings.Join(words, " ")
		}
	}
	return text
}

// Rage uppercases words independently with fixed probability and swaps
// periods for exclamation marks.
func (m *Mutator) Rage(text string) string {
	words := strings.Fields(text)
	for i := range words {
		if m.rng.Float64() < 0.4 {
			words[i] = strings.ToUpper(words[i])
		}
	}
	return strings.ReplaceAll(strings.Join(words, " "), ".", "!")
}

// Neutral applies a light glitch pass one time in five, otherwise leaves the
// text alone.
func (m *Mutator) Neutral(text string) string {
	if m.rng.Float64() < 0.2 {
		return m.Glitchy(text, 0.1)
	}
	return text
}

// Zalgo sprinkles combining marks over the whole string at the given rate.
// The rage tier-4 responses use this directly.
func (m *Mutator) Zalgo(text string, rate float64) string {
	var b strings.Builder
	for _, c := range text {
		b.WriteRune(c)
		if m.rng.Float64() < rate {
			b.WriteRune(rune(0x0300 + m.rng.Intn(0x036F-0x0300)))
		}
	}
	return b.String()
}

func spaceOut(word string) string {
	runes := []rune(word)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
