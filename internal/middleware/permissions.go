package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// PermissionNames maps permission bits to human readable names for denial messages.
var PermissionNames = map[int64]string{
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageGuild:     "Manage Server",
	discordgo.PermissionManageChannels:  "Manage Channels",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionModerateMembers: "Moderate Members",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionManageWebhooks:  "Manage Webhooks",
	discordgo.PermissionMentionEveryone: "Mention Everyone",
	discordgo.PermissionViewAuditLogs:   "View Audit Logs",
	discordgo.PermissionManageNicknames: "Manage Nicknames",
}

// WithUserPermissionCheck enforces the command's UserPermissions for slash
// invocations. Administrators and the configured developer always pass.
func WithUserPermissionCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := inv.Data.(*command.SlashInteractionContext)
			if !ok {
				return c.Run(ctx, inv)
			}

			meta, ok := cmd.Root(c).(command.DiscordMeta)
			if !ok {
				return c.Run(ctx, inv)
			}
			required := meta.UserPermissions()
			if len(required) == 0 {
				return c.Run(ctx, inv)
			}

			e := v.Event
			if e.Member == nil || e.Member.User == nil {
				return bot.RespondEphemeral(v.Session, e, "This command only works inside a server.")
			}

			var developerID string
			if v.Deps != nil && v.Deps.Config != nil {
				developerID = v.Deps.Config.DeveloperID
			}
			if developerID != "" && e.Member.User.ID == developerID {
				return c.Run(ctx, inv)
			}
			memberPerms := e.Member.Permissions
			if memberPerms&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			for _, p := range required {
				if memberPerms&p != 0 {
					return c.Run(ctx, inv)
				}
			}

			names := make([]string, 0, len(required))
			for _, p := range required {
				if name, ok := PermissionNames[p]; ok {
					names = append(names, name)
				} else {
					names = append(names, fmt.Sprintf("0x%x", p))
				}
			}
			return bot.RespondEphemeral(v.Session, e,
				fmt.Sprintf("You need one of the following permissions to use this command: %s", strings.Join(names, ", ")))
		})
	}
}
