// Package persona decides which of Marcus's voices answers a message. The
// selector is a stateless keyword classifier re-evaluated per message; it has
// no memory of prior picks.
package persona

import (
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

type Type string

const (
	Cryptic  Type = "cryptic"
	Profound Type = "profound"
	Glitchy  Type = "glitchy"
	Rage     Type = "rage"
	Neutral  Type = "neutral"
)

// scoreOrder fixes the tie-break: when two personas land on the same
// adjusted priority, the one listed first wins.
var scoreOrder = []Type{Rage, Glitchy, Cryptic, Profound, Neutral}

var basePriorities = map[Type]float64{
	Rage:     15,
	Glitchy:  12,
	Cryptic:  10,
	Profound: 7,
	Neutral:  5,
}

var keywordTriggers = map[Type][]string{
	Rage: {
		"angry", "mad", "hate", "stupid", "idiot", "dumb", "shut up",
		"annoying", "terrible", "worst", "bad", "suck", "awful",
	},
	Profound: {
		"life", "death", "meaning", "philosophy", "existence", "universe",
		"reality", "time", "consciousness", "dream", "truth", "perception",
	},
	Cryptic: {
		"secret", "mystery", "hidden", "unknown", "dark", "whisper",
		"shadow", "unseen", "forgotten", "ancient", "beyond", "beneath",
	},
	Glitchy: {
		"glitch", "broken", "error", "malfunction", "corrupt", "bug",
		"crash", "system", "code", "digital", "virtual", "program",
	},
}

var baseDelays = map[Type]float64{
	Rage:     1.0,
	Glitchy:  1.5,
	Cryptic:  2.5,
	Profound: 3.0,
	Neutral:  2.0,
}

var profanityPattern = regexp.MustCompile(`\b(fuck|shit|damn|bitch|asshole|crap|dick)\b`)

var sweetTalkPattern = regexp.MustCompile(strings.Join([]string{
	`i love you,? marcus`,
	`thank you,? marcus`,
	`marcus,? i love you`,
	`marcus,? thank you`,
	`good job,? marcus`,
	`well done,? marcus`,
}, "|"))

const (
	matchNormalization = 5.0
	matchScale         = 5.0
	minDelay           = 0.8
)

// Selector scores candidate personas for incoming messages.
type Selector struct {
	rng *rand.Rand
}

func NewSelector() *Selector {
	return &Selector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSelectorWithRand builds a selector over a caller-provided random
// source. Tests pin the source to make the neutral baseline and the
// sweet-talk branch deterministic.
func NewSelectorWithRand(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select returns the persona that should answer, plus a response delay in
// seconds. Profanity short-circuits to rage; sweet talk takes a
// probabilistic branch; everything else is scored.
func (s *Selector) Select(message string) (Type, float64) {
	lower := strings.ToLower(message)

	if profanityPattern.MatchString(lower) {
		log.Printf("[INFO] Profanity detected, immediate %s persona", Rage)
		return Rage, 1.5
	}

	if sweetTalkPattern.MatchString(lower) {
		if s.rng.Float64() < 0.7 {
			return Neutral, 2.0
		}
		return Glitchy, 1.0
	}

	scores := map[Type]float64{}
	for p, keywords := range keywordTriggers {
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		ratio := float64(matches) / matchNormalization
		if ratio > 1.0 {
			ratio = 1.0
		}
		scores[p] = ratio
	}
	// Neutral has no keywords; a random baseline keeps it in the running.
	scores[Neutral] = 0.2 + s.rng.Float64()*0.3

	chosen := Neutral
	best := -1.0
	for _, p := range scoreOrder {
		adjusted := basePriorities[p] + scores[p]*matchScale
		if adjusted > best {
			best = adjusted
			chosen = p
		}
	}

	delay := baseDelays[chosen] + (s.rng.Float64() - 0.5)
	if delay < minDelay {
		delay = minDelay
	}

	log.Printf("[INFO] Selected persona %s with delay %.2fs", chosen, delay)
	return chosen, delay
}

// FromMood maps a standing mood to the matching persona type.
func FromMood(mood string) Type {
	switch Type(mood) {
	case Cryptic, Profound, Glitchy, Rage:
		return Type(mood)
	default:
		return Neutral
	}
}
