package lore

import (
	"context"
	"math/rand"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/persona"
	"github.com/FrostlineTech/Marcus/internal/speech"

	"github.com/bwmarrin/discordgo"
)

type QuoteCommand struct{}

func (c *QuoteCommand) Name() string             { return "quote" }
func (c *QuoteCommand) Description() string      { return "Get a random Marcus quote" }
func (c *QuoteCommand) Group() string            { return "lore" }
func (c *QuoteCommand) Category() string         { return "📜 Lore" }
func (c *QuoteCommand) UserPermissions() []int64 { return []int64{} }

func (c *QuoteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *QuoteCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	if err := bot.RespondDeferred(sctx.Session, sctx.Event); err != nil {
		return err
	}

	current := sctx.Deps.Mood.Current()
	prompt := speech.QuotePrompts[rand.Intn(len(speech.QuotePrompts))]
	reply := sctx.Deps.Composer.Prompted(context.Background(), prompt, string(current), string(persona.FromMood(string(current))))

	return bot.Followup(sctx.Session, sctx.Event, reply)
}

func init() {
	command.RegisterCommand(
		&QuoteCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
