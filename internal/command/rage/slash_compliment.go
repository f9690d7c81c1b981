package rage

import (
	"context"
	"log"
	"math/rand"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/persona"
	"github.com/FrostlineTech/Marcus/internal/speech"

	"github.com/bwmarrin/discordgo"
)

var calmMoods = []mood.State{mood.Neutral, mood.Cryptic, mood.Profound, mood.Glitchy}

type ComplimentCommand struct{}

func (c *ComplimentCommand) Name() string             { return "compliment" }
func (c *ComplimentCommand) Description() string      { return "Give Marcus a compliment" }
func (c *ComplimentCommand) Group() string            { return "rage" }
func (c *ComplimentCommand) Category() string         { return "😡 Rage" }
func (c *ComplimentCommand) UserPermissions() []int64 { return []int64{} }

func (c *ComplimentCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ComplimentCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	deps := sctx.Deps
	userID := event.Member.User.ID

	level, err := sctx.Storage.DecrementRage(userID, 1)
	if err != nil {
		log.Printf("[ERR] Failed to lower rage for %s: %v", userID, err)
	}

	if err := bot.RespondDeferred(session, event); err != nil {
		return err
	}

	current := deps.Mood.Current()
	if current == mood.Rage && level <= 1 {
		next := calmMoods[rand.Intn(len(calmMoods))]
		if err := deps.Mood.Force(next); err == nil {
			current = next
		}
	}

	prompt := speech.ComplimentPrompts[rand.Intn(len(speech.ComplimentPrompts))]
	reply := deps.Composer.Prompted(context.Background(), prompt, string(current), string(persona.FromMood(string(current))))

	return bot.Followup(session, event, reply)
}

func init() {
	command.RegisterCommand(
		&ComplimentCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
