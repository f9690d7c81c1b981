package middleware

import (
	"context"
	"fmt"
	"log"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/storage"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	embed "github.com/clinet/discordgo-embed"
)

// WithGroupAccessCheck blocks commands whose group was disabled on the guild.
func WithGroupAccessCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				if v.Event.GuildID == "" {
					break
				}
				disabled, group, err := disabledGroup(c, v.Storage, v.Event.GuildID)
				if err != nil {
					log.Printf("[WARN] Group check for /%s failed: %v", c.Name(), err)
					break
				}
				if disabled {
					msg := embed.NewEmbed().
						SetColor(bot.EmbedColor).
						SetDescription(fmt.Sprintf("The `%s` command group is disabled on this server.\nAn administrator can re-enable it with `/commands toggle`.", group)).
						MessageEmbed
					return bot.RespondEmbedEphemeral(v.Session, v.Event, msg)
				}
			case *command.MessageContext:
				if v.Event.GuildID == "" {
					break
				}
				disabled, _, err := disabledGroup(c, v.Storage, v.Event.GuildID)
				if err != nil {
					log.Printf("[WARN] Group check for %s failed: %v", c.Name(), err)
					break
				}
				if disabled {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}

func disabledGroup(c cmd.Command, store *storage.Storage, guildID string) (bool, string, error) {
	meta, ok := cmd.Root(c).(command.DiscordMeta)
	if !ok {
		return false, "", nil
	}
	group := meta.Group()
	if group == "" {
		return false, "", nil
	}
	disabled, err := store.IsGroupDisabled(guildID, group)
	return disabled, group, err
}
