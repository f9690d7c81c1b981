package lore

import (
	"fmt"
	"strings"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	lorepkg "github.com/FrostlineTech/Marcus/internal/lore"
	"github.com/FrostlineTech/Marcus/internal/middleware"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type LoreCommand struct {
	keeper *lorepkg.Keeper
}

func (c *LoreCommand) Name() string             { return "lore" }
func (c *LoreCommand) Description() string      { return "Learn a random piece of Marcus lore" }
func (c *LoreCommand) Group() string            { return "lore" }
func (c *LoreCommand) Category() string         { return "📜 Lore" }
func (c *LoreCommand) UserPermissions() []int64 { return []int64{} }

func (c *LoreCommand) SlashDefinition() *discordgo.ApplicationCommand {
	categoryChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, cat := range lorepkg.Categories() {
		categoryChoices = append(categoryChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  cat,
			Value: cat,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Which corner of the backstory to dig into",
				Required:    false,
				Choices:     categoryChoices,
			},
		},
	}
}

func (c *LoreCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	var category string
	data := sctx.Event.ApplicationCommandData()
	if len(data.Options) > 0 {
		category = strings.ToLower(data.Options[0].StringValue())
		if !lorepkg.IsValidCategory(category) {
			return bot.RespondEphemeral(sctx.Session, sctx.Event,
				fmt.Sprintf("Invalid category. Choose from: %s", strings.Join(lorepkg.Categories(), ", ")))
		}
	}

	fragment := c.keeper.Random(category)

	msg := embed.NewEmbed().
		SetTitle("Marcus Lore Fragment").
		SetColor(bot.EmbedColor).
		SetDescription(fragment).
		SetFooter("The truth is buried in the static...").
		MessageEmbed

	return bot.RespondEmbed(sctx.Session, sctx.Event, msg)
}

func init() {
	command.RegisterCommand(
		&LoreCommand{keeper: lorepkg.NewKeeper()},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
