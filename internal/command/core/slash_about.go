package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	"github.com/FrostlineTech/Marcus/internal/version"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string             { return "about" }
func (c *AboutCommand) Description() string      { return "Discover the origin of this bot" }
func (c *AboutCommand) Group() string            { return "core" }
func (c *AboutCommand) Category() string         { return "🕯️ Information" }
func (c *AboutCommand) UserPermissions() []int64 { return []int64{} }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event

	embedMsg, file := buildAboutMessage()

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embedMsg},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
	if file != nil {
		resp.Data.Files = []*discordgo.File{file}
	}

	return session.InteractionRespond(event.Interaction, resp)
}

func buildAboutMessage() (*discordgo.MessageEmbed, *discordgo.File) {
	buildDate := "unknown"
	if version.BuildDate != "" && version.BuildDate != "unknown" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}

	goVer := "unknown"
	if version.GoVersion != "" {
		goVer = strings.TrimPrefix(version.GoVersion, "go")
	}

	infoFields := map[string]string{
		"Developed by Frostline Solutions": "[GitHub](https://github.com/FrostlineTech)",
		"Repository":                       "https://github.com/FrostlineTech/Marcus",
		"Release":                          fmt.Sprintf("%s (Go %s)", buildDate, goVer),
	}

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppFullName, version.AppDescription))
	for title, value := range infoFields {
		embedMsg = embedMsg.AddField(title, value)
	}

	imagePath := "./assets/about-banner.webp"
	imageName := filepath.Base(imagePath)
	imageFile, err := os.Open(imagePath)
	if err != nil {
		return embedMsg.MessageEmbed, nil
	}

	embedMsg = embedMsg.SetImage("attachment://" + imageName)
	return embedMsg.MessageEmbed, &discordgo.File{
		Name:   imageName,
		Reader: imageFile,
	}
}

func init() {
	command.RegisterCommand(
		&AboutCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
