package chat

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/rage"
	"github.com/FrostlineTech/Marcus/internal/speech"

	"github.com/bwmarrin/discordgo"
)

var dmFloodLines = []string{
	"YOU CAN'T ESCAPE ME.",
	"I'M IN YOUR DMS NOW.",
	"THIS IS YOUR FAULT.",
	"I'M NOT DONE YET.",
	"YOU'RE ON THE LIST.",
}

type ChatMessageCommand struct{}

func (c *ChatMessageCommand) Name() string             { return "chat" }
func (c *ChatMessageCommand) Description() string      { return "Mention Marcus or say his name to chat" }
func (c *ChatMessageCommand) Group() string            { return "chat" }
func (c *ChatMessageCommand) Category() string         { return "💬 Chat" }
func (c *ChatMessageCommand) UserPermissions() []int64 { return []int64{} }

func (c *ChatMessageCommand) HandlesMessages() bool { return true }

func (c *ChatMessageCommand) Run(ctx interface{}) error {
	mctx, ok := ctx.(*command.MessageContext)
	if !ok {
		return nil
	}

	event := mctx.Event
	session := mctx.Session
	if event.Author.ID == session.State.User.ID || event.Author.Bot {
		return nil
	}

	deps := mctx.Deps
	content := strings.TrimSpace(event.Content)
	lower := strings.ToLower(content)
	userID := event.Author.ID
	channelID := event.ChannelID
	mention := event.Author.Mention()
	display := event.Author.DisplayName()

	mentioned := mentionsBot(session, event)
	isDM := event.GuildID == ""
	addressed := mentioned || isDM || strings.Contains(lower, "marcus")

	if addressed && content != "" {
		if err := mctx.Storage.AppendUserMemory(userID, content); err != nil {
			log.Printf("[WARN] Failed to save memory for %s: %v", userID, err)
		}
	}

	// Rage evaluation runs before everything else; an angry Marcus does not
	// small-talk.
	outcome, err := deps.Rage.Evaluate(userID, content)
	if err != nil {
		log.Printf("[ERR] Rage evaluation for %s failed: %v", userID, err)
	}
	if outcome.SweetTalked {
		_, err := session.ChannelMessageSend(channelID, fmt.Sprintf("%s %s", mention, rage.SweetTalkReply))
		return err
	}
	if outcome.Triggered {
		log.Printf("[RAGE] %s escalated to level %d (+%d)", event.Author.Username, outcome.Level, outcome.Increment)
		applyMoodOutcome(deps.Mood, outcome)
		if rageOverridesReply(outcome.Level) {
			return c.handleRage(mctx, outcome, display, mention)
		}
		// Lower tiers escalate silently while the conversation goes on.
	}

	// Activity keeps the cooldown sweep at bay.
	if err := mctx.Storage.TouchRage(userID); err != nil {
		log.Printf("[WARN] Failed to touch rage record for %s: %v", userID, err)
	}

	// Occasionally remind a still-furious user that nothing is forgotten.
	if rand.Float64() < 0.07 {
		if level := deps.Rage.Level(userID); level >= 4 {
			session.ChannelTyping(channelID)
			time.Sleep(time.Duration(1+rand.Intn(2)) * time.Second)
			_, err := session.ChannelMessageSend(channelID, deps.Rage.Respond(level, display, mention, true))
			return err
		}
	}

	if mentioned && strings.Contains(lower, "hello") {
		_, err := session.ChannelMessageSend(channelID, fmt.Sprintf("Hello, %s. How are you today?", mention))
		return err
	}

	if rand.Float64() < 0.1 {
		emoji := speech.ReactionEmojis[rand.Intn(len(speech.ReactionEmojis))]
		if err := session.MessageReactionAdd(channelID, event.ID, emoji); err != nil {
			log.Printf("[DEBUG] Reaction failed: %v", err)
		}
	}

	if !addressed && rand.Float64() < 0.15 {
		first, followup := deps.Composer.Interjection()
		if _, err := session.ChannelMessageSend(channelID, first); err != nil {
			return err
		}
		if followup != "" {
			time.Sleep(2 * time.Second)
			_, err := session.ChannelMessageSend(channelID, followup)
			return err
		}
		return nil
	}

	if mentioned && strings.Contains(lower, "have you had your moon juice") {
		_, err := session.ChannelMessageSend(channelID, fmt.Sprintf("Yes. Have you had your moon juice today, %s?", mention))
		return err
	}
	if mentioned && (strings.Contains(lower, "where is jimbo james") || strings.Contains(lower, "wheres jimbo james")) {
		session.ChannelTyping(channelID)
		time.Sleep(2 * time.Second)
		_, err := session.ChannelMessageSend(channelID, "I must find Jimbo James.")
		return err
	}

	if !addressed && speech.HasKeywordTrigger(lower) {
		session.ChannelTyping(channelID)
		time.Sleep(time.Duration(1000+rand.Intn(1500)) * time.Millisecond)
		_, err := session.ChannelMessageSend(channelID, deps.Composer.TriggerQuote())
		return err
	}

	if !addressed || content == "" {
		return nil
	}

	log.Printf("[CHAT] %s (%s) @ %s: %s", event.Author.Username, userID, channelID, truncateLog(content, 200))

	done := make(chan struct{})
	defer close(done)
	go keepTyping(session, channelID, done)

	personaType, delay := deps.Selector.Select(content)
	time.Sleep(time.Duration(delay * float64(time.Second)))

	current := deps.Mood.Current()
	reply := deps.Composer.Compose(context.Background(), userID, content, string(current), string(personaType))
	log.Printf("[CHAT] reply to %s @ %s: %s", display, channelID, truncateLog(reply, 120))

	for _, chunk := range splitMessage(reply, 2000) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			return err
		}
		time.Sleep(200 * time.Millisecond)
	}
	return nil
}

// rageOverridesReply reports whether the tier is loud enough that the
// outburst replaces normal conversation. Below it Marcus keeps talking
// while the counter climbs.
func rageOverridesReply(level int) bool { return level >= 4 }

// applyMoodOutcome delivers a rage outcome's mood side effects.
func applyMoodOutcome(engine *mood.Engine, outcome rage.Outcome) {
	if outcome.MoodForce != "" {
		if err := engine.Force(outcome.MoodForce); err != nil {
			log.Printf("[WARN] Mood force failed: %v", err)
		}
	} else if outcome.MoodInfluence > 0 {
		if err := engine.Influence(mood.Rage, outcome.MoodInfluence); err != nil {
			log.Printf("[WARN] Mood influence failed: %v", err)
		}
	}
}

// handleRage answers a tier four or five trigger event.
func (c *ChatMessageCommand) handleRage(mctx *command.MessageContext, outcome rage.Outcome, display, mention string) error {
	session := mctx.Session
	channelID := mctx.Event.ChannelID
	deps := mctx.Deps

	session.ChannelTyping(channelID)
	if outcome.Level == 5 {
		time.Sleep(time.Duration(3+rand.Intn(3)) * time.Second)
		if _, err := session.ChannelMessageSend(channelID, fmt.Sprintf("%s, %s", mention, rage.Outburst)); err != nil {
			return err
		}
		if rand.Float64() < 0.3 {
			c.dmFlood(session, mctx.Event.Author.ID)
		}
	} else {
		time.Sleep(time.Duration(1+rand.Intn(3)) * time.Second)
		if _, err := session.ChannelMessageSend(channelID, deps.Rage.Respond(outcome.Level, display, mention, false)); err != nil {
			return err
		}
	}

	if rand.Float64() < 0.2 {
		_, err := session.ChannelMessageSend(channelID,
			fmt.Sprintf("⚠️ %s is at RAGE LEVEL %d! Proceed with caution!", mention, outcome.Level))
		return err
	}
	return nil
}

func (c *ChatMessageCommand) dmFlood(session *discordgo.Session, userID string) {
	ch, err := session.UserChannelCreate(userID)
	if err != nil {
		log.Printf("[RAGE] Failed to open DM for %s: %v", userID, err)
		return
	}
	for i := 0; i < 1+rand.Intn(3); i++ {
		if _, err := session.ChannelMessageSend(ch.ID, dmFloodLines[rand.Intn(len(dmFloodLines))]); err != nil {
			log.Printf("[RAGE] Failed to DM %s: %v", userID, err)
			return
		}
	}
}

func mentionsBot(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			return true
		}
	}
	return false
}

func truncateLog(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func splitMessage(msg string, limit int) []string {
	var result []string
	for len(msg) > limit {
		cut := strings.LastIndex(msg[:limit], "\n")
		if cut == -1 {
			cut = limit
		}
		result = append(result, strings.TrimSpace(msg[:cut]))
		msg = strings.TrimSpace(msg[cut:])
	}
	if msg != "" {
		result = append(result, msg)
	}
	return result
}

func keepTyping(s *discordgo.Session, channelID string, done <-chan struct{}) {
	_ = s.ChannelTyping(channelID)
	ticker := time.NewTicker(8 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = s.ChannelTyping(channelID)
		}
	}
}

func init() {
	command.RegisterCommand(
		&ChatMessageCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithCommandLogger(),
	)
}
