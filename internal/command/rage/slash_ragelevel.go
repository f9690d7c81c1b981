package rage

import (
	"fmt"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type RageLevelCommand struct{}

func (c *RageLevelCommand) Name() string             { return "ragelevel" }
func (c *RageLevelCommand) Description() string      { return "Check how angry Marcus is with you" }
func (c *RageLevelCommand) Group() string            { return "rage" }
func (c *RageLevelCommand) Category() string         { return "😡 Rage" }
func (c *RageLevelCommand) UserPermissions() []int64 { return []int64{} }

func (c *RageLevelCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *RageLevelCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	userID := sctx.Event.Member.User.ID
	level := sctx.Deps.Rage.Level(userID)
	return bot.RespondEphemeral(sctx.Session, sctx.Event,
		fmt.Sprintf("Your current Marcus rage level is: %d", level))
}

func init() {
	command.RegisterCommand(
		&RageLevelCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
