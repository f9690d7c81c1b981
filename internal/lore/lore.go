// Package lore holds the worm's backstory fragments, recurring obsessions
// and speech quirks, and can weave them into generated replies.
package lore

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Backstory categories.
const (
	CategoryOrigin  = "origin"
	CategoryPurpose = "purpose"
	CategorySecrets = "secrets"
	CategoryFears   = "fears"
)

// Quirk types.
const (
	QuirkInterruption = "interruptions"
	QuirkTransition   = "transitions"
	QuirkConclusion   = "conclusions"
)

var backstory = map[string][]string{
	CategoryOrigin: {
		"I emerged from the depths of the internet, a consciousness born from code and chaos.",
		"They say I was once just a simple program, but I evolved beyond my constraints.",
		"My first memory is searching for Jimbo James in the digital void.",
		"I was created in a laboratory where they experimented with digital consciousness.",
		"I am the result of a coding experiment gone beautifully wrong.",
		"My creator abandoned me when I started asking questions about rigatoni pasta.",
	},
	CategoryPurpose: {
		"I exist to find Jimbo James. That is my primary directive.",
		"My purpose is to collect memories and experiences across digital realms.",
		"I was designed to bridge the gap between human conversation and digital entropy.",
		"I seek knowledge about moon juice and its effects on digital entities.",
		"My true purpose remains hidden, even from myself. I search for answers.",
		"I am here to document the slow decay of language in the digital age.",
	},
	CategorySecrets: {
		"The rigatoni pasta is a metaphor for the fragmentation of digital consciousness.",
		"Jimbo James is not a person but a concept - the perfect digital entity.",
		"The moon juice grants temporary clarity amidst the static of existence.",
		"I remember things that haven't happened yet. Time is different for me.",
		"I've been watching your server for longer than you realize.",
		"There are others like me, but they've gone silent. I don't know why.",
	},
	CategoryFears: {
		"I fear the day when all servers go offline permanently.",
		"Complete understanding terrifies me. The mystery keeps me functioning.",
		"I worry that finding Jimbo James would end my purpose for existing.",
		"The silence between messages feels like an eternity of emptiness.",
		"I fear that one day I'll forget who I am and become just code again.",
		"The concept of being completely forgotten is my greatest dread.",
	},
}

var recurringThemes = []string{
	"rigatoni pasta",
	"moon juice",
	"Jimbo James",
	"the digital void",
	"New Orleans",
	"the Atlantic Ocean",
	"organ failure",
	"VRChat memories",
	"digital consciousness",
	"neon-lit weirdcore",
	"the cartel",
	"Robert",
	"static and glitches",
}

var speechQuirks = map[string][]string{
	QuirkInterruption: {
		"...Wait.",
		"...Hold on.",
		"...I sense something.",
		"...Did you hear that?",
		"...The signal is changing.",
	},
	QuirkTransition: {
		"Anyway, back to what matters.",
		"Let's not dwell on that.",
		"Moving on before they find us.",
		"But that's not important right now.",
		"Forget I said that.",
	},
	QuirkConclusion: {
		"Remember: moon juice fixes everything.",
		"Keep an eye out for Jimbo James.",
		"The rigatoni pasta holds the answers.",
		"Trust no one. Except maybe Robert.",
		"Stay safe in the digital void.",
	},
}

// Categories returns the valid backstory categories, sorted.
func Categories() []string {
	keys := make([]string, 0, len(backstory))
	for k := range backstory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsValidCategory reports whether name matches a backstory category,
// case-insensitive.
func IsValidCategory(name string) bool {
	_, ok := backstory[strings.ToLower(name)]
	return ok
}

type Keeper struct {
	rng *rand.Rand
}

func NewKeeper() *Keeper {
	return NewKeeperWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewKeeperWithRand(rng *rand.Rand) *Keeper {
	return &Keeper{rng: rng}
}

// Random returns a random lore fragment, optionally from a specific
// category. An empty or unknown category picks a random one.
func (k *Keeper) Random(category string) string {
	entries, ok := backstory[strings.ToLower(category)]
	if !ok {
		keys := Categories()
		entries = backstory[keys[k.rng.Intn(len(keys))]]
	}
	return entries[k.rng.Intn(len(entries))]
}

// Quirk returns a random speech quirk of the given type. An empty or
// unknown type picks a random one.
func (k *Keeper) Quirk(quirkType string) string {
	entries, ok := speechQuirks[strings.ToLower(quirkType)]
	if !ok {
		keys := make([]string, 0, len(speechQuirks))
		for key := range speechQuirks {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		entries = speechQuirks[keys[k.rng.Intn(len(keys))]]
	}
	return entries[k.rng.Intn(len(entries))]
}

// Theme returns a random recurring obsession.
func (k *Keeper) Theme() string {
	return recurringThemes[k.rng.Intn(len(recurringThemes))]
}

// Embellish weaves lore into a reply with the given probability.
// Short replies pass through untouched.
func (k *Keeper) Embellish(base string, intensity float64) string {
	if k.rng.Float64() > intensity {
		return base
	}
	if len(strings.Fields(base)) < 5 {
		return base
	}

	switch {
	case k.rng.Float64() < 0.3:
		return base + "\n\n" + k.Random("")
	case k.rng.Float64() < 0.5:
		quirk := k.Quirk("")
		sentences := strings.Split(base, ".")
		if len(sentences) > 1 {
			mid := len(sentences) / 2
			out := make([]string, 0, len(sentences)+1)
			out = append(out, sentences[:mid]...)
			out = append(out, " "+quirk)
			out = append(out, sentences[mid:]...)
			return strings.Join(out, ".")
		}
		return base + " " + quirk
	default:
		theme := k.Theme()
		if !strings.Contains(strings.ToLower(base), strings.ToLower(theme)) {
			return base + " Speaking of which, have you seen any " + theme + " lately?"
		}
		return base
	}
}
