package middleware

import (
	"context"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/pkg/cmd"
)

// WithGuildOnly rejects commands invoked outside a guild (i.e. in DMs).
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				if v.Event.GuildID == "" {
					return bot.RespondEphemeral(v.Session, v.Event, "This command only works inside a server.")
				}
			case *command.MessageContext:
				if v.Event.GuildID == "" {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}
