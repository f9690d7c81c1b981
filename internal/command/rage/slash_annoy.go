package rage

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/persona"
	"github.com/FrostlineTech/Marcus/internal/speech"

	"github.com/bwmarrin/discordgo"
)

type AnnoyCommand struct{}

func (c *AnnoyCommand) Name() string             { return "annoy" }
func (c *AnnoyCommand) Description() string      { return "Intentionally annoy Marcus" }
func (c *AnnoyCommand) Group() string            { return "rage" }
func (c *AnnoyCommand) Category() string         { return "😡 Rage" }
func (c *AnnoyCommand) UserPermissions() []int64 { return []int64{} }

func (c *AnnoyCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AnnoyCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	deps := sctx.Deps
	userID := event.Member.User.ID

	level, err := sctx.Storage.IncrementRage(userID, 1+rand.Intn(3))
	if err != nil {
		log.Printf("[ERR] Failed to raise rage for %s: %v", userID, err)
	}

	var current mood.State
	if level >= 4 {
		deps.Mood.Force(mood.Rage)
		current = mood.Rage
	} else {
		deps.Mood.Influence(mood.Rage, 0.4)
		current = deps.Mood.Current()
	}

	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	// Let the annoyance simmer before answering.
	time.Sleep(time.Duration(1000+rand.Intn(1500)) * time.Millisecond)

	prompt := speech.AnnoyPrompts[rand.Intn(len(speech.AnnoyPrompts))]
	replyMood := current
	if level >= 3 {
		replyMood = mood.Rage
	}
	reply := deps.Composer.Prompted(context.Background(), prompt, string(replyMood), string(persona.Rage))

	return bot.Followup(session, event, reply)
}

func init() {
	command.RegisterCommand(
		&AnnoyCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
