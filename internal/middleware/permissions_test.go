package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/config"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type gatedCommand struct {
	ran bool
}

func (g *gatedCommand) Name() string        { return "gated" }
func (g *gatedCommand) Description() string { return "needs manage server" }
func (g *gatedCommand) Group() string       { return "core" }
func (g *gatedCommand) Category() string    { return "Core" }
func (g *gatedCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageGuild}
}

func (g *gatedCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	g.ran = true
	return nil
}

func slashInvocation(userID string, perms int64, deps *command.Deps) *cmd.Invocation {
	return &cmd.Invocation{Data: &command.SlashInteractionContext{
		Event: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: userID},
				Permissions: perms,
			},
		}},
		Deps: deps,
	}}
}

func TestPermissionCheckDeveloperBypassUsesDepsConfig(t *testing.T) {
	base := &gatedCommand{}
	wrapped := cmd.Apply(base, WithUserPermissionCheck())

	deps := &command.Deps{Config: &config.Config{DeveloperID: "dev-1"}}
	err := wrapped.Run(context.Background(), slashInvocation("dev-1", 0, deps))
	assert.NoError(t, err)
	assert.True(t, base.ran)
}

func TestPermissionCheckAdminBypass(t *testing.T) {
	base := &gatedCommand{}
	wrapped := cmd.Apply(base, WithUserPermissionCheck())

	deps := &command.Deps{Config: &config.Config{}}
	err := wrapped.Run(context.Background(), slashInvocation("user-1", discordgo.PermissionAdministrator, deps))
	assert.NoError(t, err)
	assert.True(t, base.ran)
}

func TestPermissionCheckMatchingPermissionPasses(t *testing.T) {
	base := &gatedCommand{}
	wrapped := cmd.Apply(base, WithUserPermissionCheck())

	err := wrapped.Run(context.Background(), slashInvocation("user-1", discordgo.PermissionManageGuild, &command.Deps{}))
	assert.NoError(t, err)
	assert.True(t, base.ran)
}
