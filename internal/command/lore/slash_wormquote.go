package lore

import (
	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// WormQuoteCommand serves a canned quote straight from the pile, no AI
// involved.
type WormQuoteCommand struct{}

func (c *WormQuoteCommand) Name() string             { return "wormquote" }
func (c *WormQuoteCommand) Description() string      { return "Get a classic Marcus the Worm quote" }
func (c *WormQuoteCommand) Group() string            { return "lore" }
func (c *WormQuoteCommand) Category() string         { return "📜 Lore" }
func (c *WormQuoteCommand) UserPermissions() []int64 { return []int64{} }

func (c *WormQuoteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *WormQuoteCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	return bot.Respond(sctx.Session, sctx.Event, sctx.Deps.Composer.RandomQuote())
}

func init() {
	command.RegisterCommand(
		&WormQuoteCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
