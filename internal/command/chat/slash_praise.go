package chat

import (
	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type PraiseCommand struct{}

func (c *PraiseCommand) Name() string             { return "praise" }
func (c *PraiseCommand) Description() string      { return "Marcus will say something almost nice" }
func (c *PraiseCommand) Group() string            { return "chat" }
func (c *PraiseCommand) Category() string         { return "💬 Chat" }
func (c *PraiseCommand) UserPermissions() []int64 { return []int64{} }

func (c *PraiseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "target",
				Description: "Who gets praised (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *PraiseCommand) Run(ctx interface{}) error {
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

	return bot.Respond(sctx.Session, sctx.Event, sctx.Deps.Composer.Compliment(target.Mention()))
}

func init() {
	command.RegisterCommand(
		&PraiseCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
