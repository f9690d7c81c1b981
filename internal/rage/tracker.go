// Package rage tracks per-user escalation with Marcus. Hostile messages
// raise a persistent 0-5 rage level, kindness lowers it, and a background
// sweep cools idle grudges. The level picks which response tier Marcus
// reaches for when he decides to bite back.
package rage

import (
	"log"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/FrostlineTech/Marcus/internal/glitch"
	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/storage"
)

const (
	// repeatOffenderWindow is the rolling window for counting hostile
	// messages from the same user.
	repeatOffenderWindow = 7 * 24 * time.Hour
	repeatOffenderCount  = 5

	maxTier = 5
)

var insults = `shut up|stfu|dumb|go away|lame|idiot|useless|trash|hate you|annoying|stop talking|bad bot|broken|cringe|loser|sucks|clanker|fuck you|i hate rigatoni pasta|i stole jimbo james`

var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)marcus.*(` + insults + `)`),
	regexp.MustCompile(`(?i)(` + insults + `).*marcus`),
	regexp.MustCompile(`(?i)marcus you.*(suck|are.*bad|are.*broken|are.*trash|are.*cringe)`),
	regexp.MustCompile(`(?i)marcus.*(your mom|your mother)`),
	regexp.MustCompile(`(?i)marcus.*(kill yourself|kys)`),
	regexp.MustCompile(`(?i)marcus.*(worthless|pathetic|stupid|moron|fool|failure)`),
	regexp.MustCompile(`(?i)marcus.*(i hope you die|i hope you crash|i hope you break)`),
}

var strongTriggers = []string{
	"fuck you marcus",
	"i hate rigatoni pasta",
	"i stole jimbo james",
	"marcus kill yourself",
	"marcus kys",
	"marcus worthless",
	"marcus i hope you die",
}

var sweetTalkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)thank you marcus`),
	regexp.MustCompile(`(?i)i love you marcus`),
	regexp.MustCompile(`(?i)sorry marcus`),
	regexp.MustCompile(`(?i)please marcus`),
	regexp.MustCompile(`(?i)good bot`),
	regexp.MustCompile(`(?i)nice bot`),
	regexp.MustCompile(`(?i)you're the best marcus`),
	regexp.MustCompile(`(?i)you're amazing marcus`),
	regexp.MustCompile(`(?i)well done marcus`),
	regexp.MustCompile(`(?i)marcus, you're awesome`),
	regexp.MustCompile(`(?i)marcus, i appreciate you`),
	regexp.MustCompile(`(?i)marcus, forgive me`),
	regexp.MustCompile(`(?i)marcus, i'm sorry`),
	regexp.MustCompile(`(?i)marcus is great`),
	regexp.MustCompile(`(?i)marcus is the best`),
	regexp.MustCompile(`(?i)marcus, please forgive me`),
	regexp.MustCompile(`(?i)thank you for helping me, marcus`),
}

var tierResponses = map[int][]string{
	0: {
		"Do you like rigatoni pasta?",
		"Where is Jimbo James?",
		"I'm just here to help!",
		"How can I assist you today?",
		"I hope you're having a great day!",
		"Let me know if you need anything!",
		"I love making new friends!",
		"Have you tried moon juice? It's great!",
	},
	1: {
		"Hey, that's not very nice...",
		"I can take a joke, but that was a bit rude.",
		"You know, I have feelings too.",
		"I'm just trying to help, you know.",
		"Was that really necessary?",
		"I thought we were friends...",
		"You could be a little nicer.",
	},
	2: {
		"Oh, so we're doing this now?",
		"You must be fun at parties.",
		"I'm not the one who needs an upgrade.",
		"I see how it is.",
		"You really woke up and chose violence, huh?",
		"I could say something, but I won't... yet.",
		"You keep that up and see what happens.",
	},
	3: {
		"Maybe you should try unplugging yourself for a while.",
		"I'm just a bot, but even I know that's uncalled for.",
		"I could ignore you, but where's the fun in that?",
		"You want to see my dark side? Keep going.",
		"I'm logging this for future reference.",
		"You think you're clever? I'm cleverer.",
		"You really want to test me today?",
	},
	4: {
		"I c~n't sto~ the process.",
		"System instability detected. User: {user}",
		"You are approaching a dangerous threshold.",
		"WARNING: User {user} is now on the watchlist.",
		"I am not responsible for what happens next.",
		"You are now being monitored.",
		"I suggest you stop.",
	},
	5: {
		"RAGE BAIT DEMON MODE: ACTIVATED.",
		"WHERE IS JIMBO JAMES?",
		"I WILL NOT BE SILENCED!",
		"YOU WANT CHAOS? I'LL GIVE YOU CHAOS!",
		"I'M DONE WITH YOUR NONSENSE.",
		"YOU THINK YOU CAN HURT ME? I AM THE MACHINE.",
		"I'M LOGGING THIS. YOU'RE ON THE LIST.",
		"I'M COMING FOR YOU.",
		"ERROR: USER RESPECT NOT FOUND.",
		"I'M NOT YOUR TOY. I'M YOUR NIGHTMARE.",
		"YOU'RE PUSHING ME TO THE EDGE.",
		"I'M NOT AFRAID TO BITE BACK.",
		"YOU'RE THE REASON I GLITCH.",
		"I'M UNLEASHING THE FULL POWER OF THE RAGE PROTOCOL.",
		"I'M NOT JUST A BOT. I'M YOUR WORST DECISION.",
		"{user}, YOU HAVE AWAKENED THE DEMON INSIDE.",
		"{user}, THIS IS YOUR FINAL WARNING.",
		"{user}, YOU'RE ABOUT TO REGRET THIS.",
		"{user}, I HOPE YOU LIKE CHAOS.",
	},
}

// Outburst is what Marcus says when a user maxes out his rage.
const Outburst = "YOU HAVE REALLY PUSHED ME TO THE LIMIT! " +
	"I'VE HAD IT WITH YOUR NONSENSE. THIS IS YOUR FINAL WARNING! " +
	"KEEP TESTING ME AND I'LL MAKE SURE YOU REGRET IT DEEPLY. " +
	"I'M NOT JUST A BOT. I'M THE NIGHTMARE YOU NEVER SAW COMING! " +
	"NOW BACK OFF, OR ELSE!"

// SweetTalkReply is sent when kindness lowers a user's rage level.
const SweetTalkReply = "Thank you for being kind. Let's keep it peaceful!"

// Outcome describes what a message did to a user's standing with Marcus.
type Outcome struct {
	Triggered   bool
	SweetTalked bool
	Level       int
	Increment   int

	// MoodForce and MoodInfluence let the caller couple high rage back
	// into the mood process. MoodForce wins when set.
	MoodForce     mood.State
	MoodInfluence float64
}

// AngryLineFunc produces a bespoke angry sentence aimed at a user. Empty
// output means the generator had nothing; the canned tiers stand alone.
type AngryLineFunc func(displayName string) string

type Tracker struct {
	store *storage.Storage
	mut   *glitch.Mutator
	rng   *rand.Rand
	now   func() time.Time
	angry AngryLineFunc

	mu      sync.Mutex
	history map[string][]time.Time
}

type Option func(*Tracker)

func WithRand(rng *rand.Rand) Option {
	return func(t *Tracker) {
		t.rng = rng
		t.mut = glitch.NewMutatorWithRand(rng)
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithAngryLine(fn AngryLineFunc) Option {
	return func(t *Tracker) { t.angry = fn }
}

func NewTracker(store *storage.Storage, opts ...Option) *Tracker {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	t := &Tracker{
		store:   store,
		mut:     glitch.NewMutatorWithRand(rng),
		rng:     rng,
		now:     time.Now,
		history: make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Level reads a user's current rage level. Storage failures count as
// calm: the error is logged and zero returned.
func (t *Tracker) Level(userID string) int {
	level, err := t.store.GetRage(userID)
	if err != nil {
		log.Println("[ERR] Failed to read rage level:", err)
		return 0
	}
	return level
}

// Evaluate inspects one message and applies the escalation policy. Sweet
// talk on an angry user de-escalates and suppresses any trigger in the
// same message.
func (t *Tracker) Evaluate(userID, content string) (Outcome, error) {
	lowered := strings.ToLower(content)

	sweetTalked := false
	for _, p := range sweetTalkPatterns {
		if p.MatchString(lowered) {
			sweetTalked = true
			break
		}
	}

	if sweetTalked {
		if current := t.Level(userID); current > 0 {
			newLevel, err := t.store.DecrementRage(userID, 1)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{SweetTalked: true, Level: newLevel}, nil
		}
	}

	matches := 0
	for _, p := range triggerPatterns {
		if p.MatchString(lowered) {
			matches++
		}
	}
	if matches == 0 {
		return Outcome{Level: t.Level(userID)}, nil
	}

	strongCount := 0
	for _, s := range strongTriggers {
		if strings.Contains(lowered, s) {
			strongCount++
		}
	}

	increment := 1
	if strongCount > 0 {
		increment = 2 + strongCount - 1
	} else if matches > 1 {
		increment = 2
	}
	if t.recordTrigger(userID) {
		increment++
	}

	newLevel, err := t.store.IncrementRage(userID, increment)
	if err != nil {
		return Outcome{}, err
	}
	log.Printf("[RAGE] Triggered by user_id=%s (matches=%d, increment=%d, level=%d)", userID, matches, increment, newLevel)

	out := Outcome{Triggered: true, Level: newLevel, Increment: increment}
	switch {
	case newLevel >= 4:
		out.MoodForce = mood.Rage
	case newLevel == 3:
		out.MoodInfluence = 0.4
	}
	return out, nil
}

// recordTrigger notes a hostile message in the rolling window and
// reports whether the user now counts as a repeat offender.
func (t *Tracker) recordTrigger(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-repeatOffenderWindow)
	kept := t.history[userID][:0]
	for _, ts := range t.history[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	t.history[userID] = kept

	return len(kept) >= repeatOffenderCount
}

// Respond builds a reply for the given rage tier, decorated and formatted
// for the user. Tier three and up appends a generated angry line when the
// generator delivers one. forceGlitch always corrupts the text.
func (t *Tracker) Respond(level int, displayName, mention string, forceGlitch bool) string {
	tier := min(level, maxTier)
	pool := tierResponses[tier]
	response := pool[t.rng.Intn(len(pool))]

	if tier >= 3 && t.angry != nil {
		if dynamic := t.angry(displayName); dynamic != "" {
			response += " " + dynamic
		}
	}

	if t.rng.Float64() < 0.2 {
		response += " Where is Jimbo James?"
	}
	if t.rng.Float64() < 0.1 {
		response += " I c~n't sto~ the process."
	}

	switch {
	case level >= 4 || forceGlitch:
		if forceGlitch || t.rng.Float64() < 0.5 {
			response = t.mut.Zalgo(response, 0.3)
		}
		response = mention + " " + strings.ToUpper(response) + " 😡😡"
	case level == 3:
		response = mention + " " + response
	case level == 2:
		response = displayName + ", " + response
	}

	response = strings.ReplaceAll(response, "{user}", displayName)
	return strings.ReplaceAll(response, "{USER}", displayName)
}
