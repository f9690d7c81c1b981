// Package mood owns Marcus's affective state: a semi-Markov process over a
// closed set of moods. Sojourn time in a mood is drawn per visit from that
// mood's duration range; the next mood depends only on the current one.
// Transitions are evaluated lazily on read, there is no background clock.
package mood

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

type State string

const (
	Neutral  State = "neutral"
	Cryptic  State = "cryptic"
	Profound State = "profound"
	Glitchy  State = "glitchy"
	Rage     State = "rage"
)

// States lists all moods in their canonical order.
var States = []State{Neutral, Cryptic, Profound, Glitchy, Rage}

var ErrInvalidMood = errors.New("invalid mood name")

// Parse converts a mood name to a State.
func Parse(name string) (State, error) {
	for _, s := range States {
		if string(s) == name {
			return s, nil
		}
	}
	return "", ErrInvalidMood
}

type durationRange struct {
	min, max time.Duration
}

// transitionProb is one row entry of the transition table. Rows are slices,
// not maps: the cumulative walk needs a stable enumeration order.
type transitionProb struct {
	next State
	prob float64
}

var moodDurations = map[State]durationRange{
	Neutral:  {5 * time.Minute, 10 * time.Minute},
	Cryptic:  {3 * time.Minute, 7 * time.Minute},
	Profound: {4 * time.Minute, 8 * time.Minute},
	Glitchy:  {2 * time.Minute, 5 * time.Minute},
	Rage:     {1 * time.Minute, 4 * time.Minute},
}

// Probabilities per row sum to ≤ 1.0; the remainder is the chance to stay put.
var moodTransitions = map[State][]transitionProb{
	Neutral:  {{Cryptic, 0.3}, {Profound, 0.3}, {Glitchy, 0.2}, {Rage, 0.05}},
	Cryptic:  {{Neutral, 0.2}, {Profound, 0.4}, {Glitchy, 0.2}, {Rage, 0.05}},
	Profound: {{Neutral, 0.3}, {Cryptic, 0.3}, {Glitchy, 0.1}, {Rage, 0.05}},
	Glitchy:  {{Neutral, 0.2}, {Cryptic, 0.2}, {Profound, 0.1}, {Rage, 0.2}},
	Rage:     {{Neutral, 0.3}, {Cryptic, 0.1}, {Profound, 0.1}, {Glitchy, 0.3}},
}

// Engine holds the current mood and its transition schedule. Safe for
// concurrent use; the mood is process-wide.
type Engine struct {
	mu               sync.Mutex
	current          State
	startedAt        time.Time
	nextTransitionAt time.Time
	transitions      map[State][]transitionProb
	rng              *rand.Rand
	now              func() time.Time
}

type Option func(*Engine)

// WithRand replaces the random source. Tests use a seeded source to pin
// transition rolls.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		current:     Neutral,
		transitions: moodTransitions,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.startedAt = e.now()
	e.nextTransitionAt = e.startedAt.Add(e.sojourn(e.current))
	return e
}

// Current returns the active mood, transitioning first if the sojourn for
// the present mood has expired.
func (e *Engine) Current() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.now().Before(e.nextTransitionAt) {
		e.transition()
	}
	return e.current
}

// Force unconditionally switches to the given mood and reschedules the next
// transition. The engine is left untouched on an unknown mood.
func (e *Engine) Force(s State) error {
	if _, ok := moodDurations[s]; !ok {
		return ErrInvalidMood
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.set(s)
	log.Printf("[INFO] Mood forcibly set to %s", s)
	return nil
}

// Influence behaves like Force with probability strength, otherwise does
// nothing. A no-op roll still counts as success.
func (e *Engine) Influence(s State, strength float64) error {
	if _, ok := moodDurations[s]; !ok {
		return ErrInvalidMood
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng.Float64() < strength {
		e.set(s)
		log.Printf("[INFO] Mood influenced to %s (strength %.2f)", s, strength)
	}
	return nil
}

// set assumes e.mu is held and s is valid.
func (e *Engine) set(s State) {
	e.current = s
	e.startedAt = e.now()
	e.nextTransitionAt = e.startedAt.Add(e.sojourn(s))
}

// transition assumes e.mu is held.
func (e *Engine) transition() {
	old := e.current
	e.current = e.selectNext(e.rng.Float64())
	e.startedAt = e.now()
	e.nextTransitionAt = e.startedAt.Add(e.sojourn(e.current))

	if old != e.current {
		log.Printf("[INFO] Mood transitioned from %s to %s", old, e.current)
	}
}

// selectNext walks the current mood's transition row in declared order,
// accumulating probability. The first entry whose cumulative sum reaches the
// roll wins; if the roll lands in the residual mass the mood stays.
func (e *Engine) selectNext(roll float64) State {
	cumulative := 0.0
	for _, t := range e.transitions[e.current] {
		cumulative += t.prob
		if roll <= cumulative {
			return t.next
		}
	}
	return e.current
}

func (e *Engine) sojourn(s State) time.Duration {
	d := moodDurations[s]
	if d.min >= d.max {
		return d.min
	}
	return d.min + time.Duration(e.rng.Float64()*float64(d.max-d.min))
}
