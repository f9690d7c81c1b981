package chat

import (
	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type RoastCommand struct{}

func (c *RoastCommand) Name() string             { return "roast" }
func (c *RoastCommand) Description() string      { return "Marcus will roast you or a chosen victim" }
func (c *RoastCommand) Group() string            { return "chat" }
func (c *RoastCommand) Category() string         { return "💬 Chat" }
func (c *RoastCommand) UserPermissions() []int64 { return []int64{} }

func (c *RoastCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "victim",
				Description: "Who gets roasted (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *RoastCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	target := sctx.Event.Member.User
	data := sctx.Event.ApplicationCommandData()
	if len(data.Options) > 0 {
		if u := data.Options[0].UserValue(sctx.Session); u != nil {
			target = u
		}
	}

	return bot.Respond(sctx.Session, sctx.Event, sctx.Deps.Composer.Roast(target.Mention()))
}

func init() {
	command.RegisterCommand(
		&RoastCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
