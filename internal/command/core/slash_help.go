package core

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/config"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/version"
	"github.com/FrostlineTech/Marcus/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "Get a list of available commands" }
func (c *HelpCommand) Group() string            { return "core" }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return []int64{} }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "category",
				Description: "View commands grouped by category",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "group",
				Description: "View commands grouped by group",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "flat",
				Description: "View all commands as a flat list",
			},
		},
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	if err := bot.RespondDeferredEphemeral(session, event); err != nil {
		log.Println("[ERR] Failed to defer help interaction:", err)
		return err
	}

	data := event.ApplicationCommandData()
	var output string
	if len(data.Options) == 0 {
		output = buildHelpByCategory()
	} else {
		switch data.Options[0].Name {
		case "group":
			output = buildHelpByGroup()
		case "flat":
			output = buildHelpFlat()
		default:
			output = buildHelpByCategory()
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: output,
		Color:       bot.EmbedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: "This place is a dangerous place."},
	}

	return bot.FollowupEmbedEphemeral(session, event, embed)
}

// meta returns the Discord metadata behind a registered command, if any.
func meta(c cmd.Command) (command.DiscordMeta, bool) {
	m, ok := cmd.Root(c).(command.DiscordMeta)
	return m, ok
}

func buildHelpByCategory() string {
	all := command.AllCommands()

	categoryMap := make(map[string][]cmd.Command)
	categorySort := make(map[string]int)

	for _, c := range all {
		m, ok := meta(c)
		if !ok {
			continue
		}
		cat := m.Category()
		categoryMap[cat] = append(categoryMap[cat], c)
		if _, ok := categorySort[cat]; !ok {
			categorySort[cat] = config.CategoryWeights[cat]
		}
	}

	type catSort struct {
		Name string
		Sort int
	}
	var sortedCats []catSort
	for cat, sortVal := range categorySort {
		sortedCats = append(sortedCats, catSort{cat, sortVal})
	}
	sort.Slice(sortedCats, func(i, j int) bool {
		return sortedCats[i].Sort < sortedCats[j].Sort
	})

	var sb strings.Builder
	for _, cat := range sortedCats {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat.Name))
		cmds := categoryMap[cat.Name]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
		for _, c := range cmds {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildHelpByGroup() string {
	all := command.AllCommands()

	groupMap := make(map[string][]cmd.Command)
	for _, c := range all {
		m, ok := meta(c)
		if !ok {
			continue
		}
		groupMap[m.Group()] = append(groupMap[m.Group()], c)
	}

	var sortedGroups []string
	for group := range groupMap {
		sortedGroups = append(sortedGroups, group)
	}
	sort.Strings(sortedGroups)

	var sb strings.Builder
	for _, group := range sortedGroups {
		sb.WriteString(fmt.Sprintf("**%s**\n", group))
		cmds := groupMap[group]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
		for _, c := range cmds {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func buildHelpFlat() string {
	all := command.AllCommands()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	var sb strings.Builder
	for _, c := range all {
		sb.WriteString(fmt.Sprintf("`%s` - %s\n", c.Name(), c.Description()))
	}
	return sb.String()
}

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
