package command

import (
	"context"

	"github.com/FrostlineTech/Marcus/internal/storage"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Args    []string
	Storage *storage.Storage
	Deps    *Deps
}

type ComponentInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
	Deps    *Deps
}

type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Storage *storage.Storage
	Deps    *Deps
}

// Providers describe how a command is registered with Discord.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// MessageHandler marks commands that want every incoming message, not just
// slash interactions.
type MessageHandler interface {
	HandlesMessages() bool
}

// DiscordMeta is exposed by the Discord adapter so middleware can read
// Group/Category/Permissions without depending on the concrete command type.
type DiscordMeta interface {
	Group() string
	Category() string
	UserPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement (Run takes
// interface{} for Discord contexts).
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry. It also forwards the provider interfaces of the inner
// command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string            { return a.Cmd.Group() }
func (a *DiscordAdapter) Category() string         { return a.Cmd.Category() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (a *DiscordAdapter) HandlesMessages() bool {
	if mh, ok := a.Cmd.(MessageHandler); ok {
		return mh.HandlesMessages()
	}
	return false
}

// RegisterCommand registers a Discord command with the universal registry and
// applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(c)
}

// AllCommands returns every registered command, sorted by name.
func AllCommands() []cmd.Command {
	return cmd.DefaultRegistry.GetAll()
}

// GetCommand looks up a registered command by name.
func GetCommand(name string) (cmd.Command, bool) {
	c := cmd.DefaultRegistry.Get(name)
	return c, c != nil
}
