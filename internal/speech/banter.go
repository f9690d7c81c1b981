// /internal/speech/banter.go
package speech

import (
	"math/rand"
	"strings"
)

// Quotes is the pool of canned Marcus lines used for keyword triggers
// and the quote command when the AI layer is skipped.
var Quotes = []string{
	"I must make amends with the cartel.",
	"This place is dangerous.",
	"New Orleans.",
	"Atlantic ocean.",
	"Where is Jimbo James?",
	"Where is Robert?",
	"I feel happiness as I begin to experience organ failure.",
	"Have you tried the moon juice?",
	"This place is a dangerous place.",
}

var voiceStyles = map[string][]string{
	"spiritual": {
		"The spirits are restless tonight.",
		"This dimension is a copy of a copy of a lie.",
	},
	"chaotic": {
		"I put a fork in the router.",
		"There are frogs in the generator.",
	},
	"existential": {
		"Am I even real, or just a process in a mask?",
		"Why does rigatoni make me cry?",
	},
}

// keywordTriggers fire a canned quote instead of a generated reply.
var keywordTriggers = []string{
	"cartel",
	"dangerous",
	"orleans",
	"atlantic",
	"jimbo",
	"robert",
	"moon juice",
	"organ failure",
	"vrchat",
	"neon-lit weirdcore",
	"brainrot prophet",
	"the void",
	"the abyss",
	"the static",
	"the signal",
	"backrooms",
	"liminal",
	"eldritch",
	"cursed",
	"paranormal",
	"glitch in the matrix",
	"mandela effect",
}

// ReactionEmojis is the pool for random emoji reactions.
var ReactionEmojis = []string{"🧠", "🌊", "🪱", "😵‍💫", "🌌", "🧃", "🔥", "💀", "😈", "🤖", "🥶", "👁️"}

var roasts = []string{
	"you have the energy of a Windows update at 2am.",
	"you're the reason the server has a firewall.",
	"you make Windows Vista look stable.",
	"you lag in real life.",
	"your vibe is so mid, even the bots are bored.",
	"you have more red flags than a C compiler.",
	"you'd lose a staring contest with a loading screen.",
	"your comebacks are as slow as hotel WiFi.",
	"you get more ignored than Terms of Service.",
	"you're the human version of 'connection lost'.",
	"if you were a bug, I'd leave you unfixed on purpose.",
	"you have the drip of a default profile pic.",
	"you're the NPC in someone else's story.",
	"if you were a ping, you'd be 999ms.",
	"you're the human equivalent of 'this message was deleted'.",
}

var compliments = []string{
	"you're the rigatoni to my sauce!",
	"if I could code a friend, it would be you.",
	"you light up the server like neon!",
	"you're more rare than a bug-free release.",
	"you're the worm's pajamas!",
	"you have main character energy!",
}

// HasKeywordTrigger reports whether content touches one of Marcus's
// obsessions.
func HasKeywordTrigger(content string) bool {
	lowered := strings.ToLower(content)
	for _, trigger := range keywordTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

// TriggerQuote picks a canned line for a keyword trigger with light
// tilde corruption.
func (c *Composer) TriggerQuote() string {
	styles := make([]string, 0, len(voiceStyles))
	for style := range voiceStyles {
		styles = append(styles, style)
	}
	pool := append([]string{}, Quotes...)
	pool = append(pool, voiceStyles[styles[c.rng.Intn(len(styles))]]...)

	msg := pool[c.rng.Intn(len(pool))]
	return tildeGlitch(msg, 0.05, c.rng)
}

// RandomQuote returns an unglitched canned quote.
func (c *Composer) RandomQuote() string {
	return Quotes[c.rng.Intn(len(Quotes))]
}

// Roast returns an insult addressed to the given mention.
func (c *Composer) Roast(mention string) string {
	return mention + ", " + roasts[c.rng.Intn(len(roasts))]
}

// Compliment returns a kind word addressed to the given mention.
func (c *Composer) Compliment(mention string) string {
	return mention + ", " + compliments[c.rng.Intn(len(compliments))]
}

// Interjection returns an unprompted Marcus remark. The second return
// value is a follow-up line to send after a short pause, empty if none.
func (c *Composer) Interjection() (string, string) {
	if c.rng.Float64() < 0.5 {
		return "Do you like rigatoni pasta?", ""
	}
	return "...Wait.", "Where is Jimbo James?"
}

func tildeGlitch(text string, rate float64, rng *rand.Rand) string {
	var b strings.Builder
	for _, r := range text {
		if rng.Float64() < rate {
			b.WriteRune('~')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
