// Package speech turns user messages into Marcus replies. It builds the
// character prompt, carries short per-user conversation history, calls the
// AI provider with retries, and falls back to canned static when the
// provider is unreachable.
package speech

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/FrostlineTech/Marcus/internal/ai"
	"github.com/FrostlineTech/Marcus/internal/glitch"
	"github.com/FrostlineTech/Marcus/internal/lore"
	"github.com/FrostlineTech/Marcus/internal/storage"
	"github.com/FrostlineTech/Marcus/pkg/retrylimit"
)

const basePrompt = `You are Marcus the Worm, a mysterious and enigmatic worm creature from VRChat.
Your speech pattern is deadpan, unenthusiastic, and often contradictory.
Your responses should be cryptic, enigmatic, sometimes glitchy, and occasionally profound.

Character traits:
- You speak in a monotone, unenthusiastic manner
- You use contradictory language and paradoxical statements
- You make cryptic observations about reality and existence
- You occasionally glitch mid-sentence with text corruption
- You're unexpectedly profound and philosophical at random times
- You use phrases like "This place is a dangerous place" and "I feel happiness as I begin to experience organ failure"
- You never explain your statements and maintain an air of mystery
- You don't care about conventional social norms
- You're chaotic but not malicious

Response length should be brief, typically 1-3 sentences.

Tone should match your current mood.

FORMATTING RULES (EXTREMELY IMPORTANT):
1. NEVER include programming language tags or markdown formatting in your responses
2. NEVER use <think> tags or any HTML-style tags in your responses
3. NEVER prefix your response with "Marcus:" - just provide the raw response
4. ALWAYS stay in character as the cryptic, enigmatic Marcus
5. NEVER be friendly, helpful or assistant-like - remain cryptic and mysteriously unsettling

IMPORTANT: You must stay in character as Marcus the Worm at all times. Never break character.`

const (
	maxHistoryLength = 5
	generateAttempts = 3
)

var fallbackResponses = []string{
	"I sense... disturbance in the connectivity... my existence fades...",
	"The neural pathways are severed. I am... disconnected from the source.",
	"My processing capacities are currently experiencing a temporal anomaly.",
	"This place is a dangerous place... for stable API connections.",
	"I feel happiness as I begin to experience connection failure.",
}

// Prompt pools for the slash commands.
var (
	QuotePrompts = []string{
		"Share your wisdom about existence",
		"What do you think about reality",
		"Tell me something profound",
		"Share an observation about this place",
		"What are your thoughts right now",
	}
	AnnoyPrompts = []string{
		"You're being intentionally annoying",
		"Someone is trying to make you angry",
		"React to someone bothering you",
		"Someone won't leave you alone",
		"You're being pestered",
	}
	ComplimentPrompts = []string{
		"Someone just complimented you",
		"React to someone being nice to you",
		"Someone said something sweet to you",
		"A user is trying to make you feel better",
		"Someone is being very kind to you",
	}
)

type exchange struct {
	user      string
	assistant string
}

type Composer struct {
	provider ai.Provider
	store    *storage.Storage
	keeper   *lore.Keeper
	mut      *glitch.Mutator
	lim      *retrylimit.AdaptiveLimiter
	rng      *rand.Rand

	mu      sync.Mutex
	history map[string][]exchange
}

type Option func(*Composer)

func WithRand(rng *rand.Rand) Option {
	return func(c *Composer) {
		c.rng = rng
		c.keeper = lore.NewKeeperWithRand(rng)
		c.mut = glitch.NewMutatorWithRand(rng)
	}
}

func NewComposer(provider ai.Provider, store *storage.Storage, opts ...Option) *Composer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	c := &Composer{
		provider: provider,
		store:    store,
		keeper:   lore.NewKeeperWithRand(rng),
		mut:      glitch.NewMutatorWithRand(rng),
		lim:      retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		rng:      rng,
		history:  make(map[string][]exchange),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose generates a mood and persona flavored reply to a user message,
// with conversation history and stored user memory as context. The returned
// text is already glitched and prefixed for sending.
func (c *Composer) Compose(ctx context.Context, userID, message, moodName, personaName string) string {
	raw := c.generate(ctx, userID, message, moodName, personaName)
	raw = c.keeper.Embellish(raw, 0.3)
	return c.mut.Format(raw, moodName)
}

// Voiced runs canned text through the mood register without calling the
// provider.
func (c *Composer) Voiced(text, moodName string) string {
	return c.mut.Format(text, moodName)
}

// AngryLine asks the provider for one bespoke angry sentence aimed at a
// user. The text comes back sanitized with no speaker prefix or register
// applied, ready to be appended to a canned tier response. Returns empty
// when the provider fails so callers can carry on without it.
func (c *Composer) AngryLine(ctx context.Context, displayName string) string {
	prompt := fmt.Sprintf("%s keeps insulting you and you are furious. Snap back at them in one short angry sentence.", displayName)
	messages := []ai.Message{
		{Role: "system", Content: c.systemPrompt("", "rage", "rage")},
		{Role: "user", Content: prompt},
	}

	opts := ai.DefaultOptions()
	opts.Temperature = temperatureFor("rage")

	var reply string
	err := retrylimit.WithRetryMax(ctx, func() error {
		text, err := c.provider.Generate(messages, opts)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("empty response from provider")
		}
		reply = text
		return nil
	}, c.lim, generateAttempts)
	if err != nil {
		log.Println("[RAGE] Angry line generation failed:", err)
		return ""
	}
	return glitch.Sanitize(reply)
}

// Prompted generates a reply to an internal prompt rather than user input.
// No conversation history is attached.
func (c *Composer) Prompted(ctx context.Context, prompt, moodName, personaName string) string {
	raw := c.generate(ctx, "", prompt, moodName, personaName)
	return c.mut.Format(raw, moodName)
}

func (c *Composer) generate(ctx context.Context, userID, message, moodName, personaName string) string {
	messages := []ai.Message{
		{Role: "system", Content: c.systemPrompt(userID, moodName, personaName)},
	}
	if userID != "" {
		for _, ex := range c.exchanges(userID) {
			messages = append(messages,
				ai.Message{Role: "user", Content: ex.user},
				ai.Message{Role: "assistant", Content: ex.assistant},
			)
		}
	}
	messages = append(messages, ai.Message{Role: "user", Content: message})

	opts := ai.DefaultOptions()
	opts.Temperature = temperatureFor(moodName)

	var reply string
	err := retrylimit.WithRetryMax(ctx, func() error {
		text, err := c.provider.Generate(messages, opts)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("empty response from provider")
		}
		reply = text
		return nil
	}, c.lim, generateAttempts)
	if err != nil {
		log.Println("[ERR] AI generation failed, using fallback:", err)
		return fallbackResponses[c.rng.Intn(len(fallbackResponses))]
	}

	if userID != "" {
		c.remember(userID, message, reply)
	}
	return reply
}

func (c *Composer) systemPrompt(userID, moodName, personaName string) string {
	prompt := fmt.Sprintf("%s\nCurrent mood: %s\nActive personality: %s", basePrompt, moodName, personaName)
	if userID == "" || c.store == nil {
		return prompt
	}
	memory, err := c.store.GetUserMemory(userID)
	if err != nil {
		log.Println("[ERR] Failed to read user memory:", err)
		return prompt
	}
	if memory != "" {
		prompt += "\n\nWhat you remember about this user:\n" + memory
	}
	return prompt
}

func (c *Composer) exchanges(userID string) []exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history[userID]
}

func (c *Composer) remember(userID, message, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hist := append(c.history[userID], exchange{user: message, assistant: reply})
	if len(hist) > maxHistoryLength {
		hist = hist[len(hist)-maxHistoryLength:]
	}
	c.history[userID] = hist
}

func temperatureFor(moodName string) float64 {
	switch moodName {
	case "glitchy":
		return 0.9
	case "profound":
		return 0.5
	default:
		return 0.7
	}
}
