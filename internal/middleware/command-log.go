package middleware

import (
	"context"
	"log"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				e := v.Event
				user := resolveUser(v.Session, e)
				if logErr := bot.LogCommand(v.Session, v.Storage, e.GuildID, e.ChannelID, user.ID, user.Username, c.Name()); logErr != nil {
					log.Printf("[WARN] Failed to log command /%s: %v", c.Name(), logErr)
				}
			case *command.ComponentInteractionContext:
				e := v.Event
				user := resolveUser(v.Session, e)
				if logErr := bot.LogCommand(v.Session, v.Storage, e.GuildID, e.ChannelID, user.ID, user.Username, c.Name()); logErr != nil {
					log.Printf("[WARN] Failed to log component /%s: %v", c.Name(), logErr)
				}
			case *command.MessageContext:
				// skip message commands
			}
			return err
		})
	}
}

// resolveUser safely retrieves the user object from an InteractionCreate event
func resolveUser(s *discordgo.Session, e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		if u, err := s.User(e.User.ID); err == nil {
			return u
		}
		return e.User
	}
	// Safe fallback
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}
