package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/pkg/util"

	"github.com/bwmarrin/discordgo"
)

// 2000 minus the code block wrappers.
const maxLogContentLength = 2000 - len("```md\n") - len("```")

type CommandsCommand struct{}

func (c *CommandsCommand) Name() string        { return "commands" }
func (c *CommandsCommand) Description() string { return "Inspect or toggle command groups" }
func (c *CommandsCommand) Group() string       { return "core" }
func (c *CommandsCommand) Category() string    { return "🕯️ Information" }
func (c *CommandsCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator, discordgo.PermissionManageGuild}
}

func (c *CommandsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	groupChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, group := range uniqueGroups() {
		groupChoices = append(groupChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  group,
			Value: group,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Check which command groups are enabled or disabled",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "log",
				Description: "Review recently used commands",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Enable or disable a group of commands",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "group",
						Description: "Command group to toggle",
						Required:    true,
						Choices:     groupChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "state",
						Description: "Enable or disable the group",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Enable", Value: "enable"},
							{Name: "Disable", Value: "disable"},
						},
					},
				},
			},
		},
	}
}

func (c *CommandsCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	options := sctx.Event.ApplicationCommandData().Options
	if len(options) == 0 {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "No subcommand provided.")
	}

	switch options[0].Name {
	case "toggle":
		return c.runToggle(sctx, options[0].Options)
	case "log":
		return c.runLog(sctx)
	default:
		return c.runStatus(sctx)
	}
}

func (c *CommandsCommand) runLog(sctx *command.SlashInteractionContext) error {
	records, err := sctx.Storage.FetchCommandHistory(sctx.Event.GuildID)
	if err != nil {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, fmt.Sprintf("Failed to fetch command logs: %v", err))
	}
	if len(records) == 0 {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "No command history found. The worm has been left alone.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-19s\t%-15s\t%-12s\t%s\n", "# Datetime", "# Username", "# Channel", "# Command"))
	for idx := len(records) - 1; idx >= 0; idx-- {
		r := records[idx]
		line := fmt.Sprintf(
			"%-19s\t%-15s\t#%-12s\t/%s\n",
			util.FormatDateTpl(r.Datetime.UnixMilli(), "YYYY-MM-DD hh:mm:ss"),
			r.Username,
			r.ChannelName,
			r.Command,
		)
		if sb.Len()+len(line) > maxLogContentLength {
			break
		}
		sb.WriteString(line)
	}

	return bot.RespondEphemeral(sctx.Session, sctx.Event, "```md\n"+sb.String()+"```")
}

func (c *CommandsCommand) runStatus(sctx *command.SlashInteractionContext) error {
	guildID := sctx.Event.GuildID
	disabledGroups, err := sctx.Storage.GetDisabledGroups(guildID)
	if err != nil {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "Failed to read group status.")
	}
	disabledMap := make(map[string]bool)
	for _, g := range disabledGroups {
		disabledMap[g] = true
	}

	var sb strings.Builder
	sb.WriteString("Command groups:\n\n")
	for _, group := range uniqueGroups() {
		status := "✅ enabled"
		if disabledMap[group] {
			status = "🚫 disabled"
		}
		sb.WriteString(fmt.Sprintf("`%s`\t\t: %s\n", group, status))
	}

	return bot.RespondEphemeral(sctx.Session, sctx.Event, sb.String())
}

func (c *CommandsCommand) runToggle(sctx *command.SlashInteractionContext, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	if len(opts) < 2 {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "Both `group` and `state` are required.")
	}
	group := opts[0].StringValue()
	state := opts[1].StringValue()
	guildID := sctx.Event.GuildID

	if group == "core" && state == "disable" {
		return bot.RespondEphemeral(sctx.Session, sctx.Event, "You can't disable the `core` group. Even the worm needs a spine.")
	}

	if state == "disable" {
		if err := sctx.Storage.DisableGroup(guildID, group); err != nil {
			return bot.RespondEphemeral(sctx.Session, sctx.Event, "Failed to disable the group.")
		}
	} else {
		if err := sctx.Storage.EnableGroup(guildID, group); err != nil {
			return bot.RespondEphemeral(sctx.Session, sctx.Event, "Failed to enable the group.")
		}
	}

	bot.PublishSystemEvent(bot.SystemEvent{
		Type:    bot.SystemEventRefreshCommands,
		GuildID: guildID,
		Target:  "group:" + group,
	})

	return bot.RespondEphemeral(sctx.Session, sctx.Event, fmt.Sprintf("Command group `%s` %sd.", group, state))
}

func uniqueGroups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, c := range command.AllCommands() {
		m, ok := meta(c)
		if !ok {
			continue
		}
		if g := m.Group(); g != "" && !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)
	return groups
}

func init() {
	command.RegisterCommand(
		&CommandsCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
