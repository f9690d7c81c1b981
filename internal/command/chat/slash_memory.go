package chat

import (
	"fmt"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type MemoryCommand struct{}

func (c *MemoryCommand) Name() string             { return "memory" }
func (c *MemoryCommand) Description() string      { return "See or erase what Marcus remembers about you" }
func (c *MemoryCommand) Group() string            { return "chat" }
func (c *MemoryCommand) Category() string         { return "💬 Chat" }
func (c *MemoryCommand) UserPermissions() []int64 { return []int64{} }

func (c *MemoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "Show your conversation memory",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "forget",
				Description: "Make Marcus forget everything about you",
			},
		},
	}
}

func (c *MemoryCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	userID := sctx.Event.Member.User.ID
	options := sctx.Event.ApplicationCommandData().Options
	if len(options) == 0 {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "Use `view` or `forget`.")
	}

	switch options[0].Name {
	case "forget":
		if err := sctx.Storage.ClearUserMemory(userID); err != nil {
			return bot.RespondEphemeral(sctx.Session, sctx.Event, "The static refused to let go. Try again.")
		}
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "Forgotten. Who are you again?")
	default:
		memory, err := sctx.Storage.GetUserMemory(userID)
		if err != nil {
			return bot.RespondEphemeral(sctx.Session, sctx.Event, "The memory bank flickered. Try again.")
		}
		if memory == "" {
			return bot.RespondEphemeral(sctx.Session, sctx.Event, "I remember nothing about you. Yet.")
		}
		return bot.RespondEphemeral(sctx.Session, sctx.Event,
			fmt.Sprintf("What I remember about you:\n```%s```", memory))
	}
}

func init() {
	command.RegisterCommand(
		&MemoryCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
