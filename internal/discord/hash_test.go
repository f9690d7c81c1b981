package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func sampleCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "lore",
		Description: "Learn a random piece of Marcus lore",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Which corner of the backstory to dig into",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "origin", Value: "origin"},
					{Name: "secrets", Value: "secrets"},
				},
			},
		},
	}
}

func TestHashCommandDeterministic(t *testing.T) {
	a := hashCommand(sampleCommand())
	b := hashCommand(sampleCommand())
	assert.Equal(t, a, b)
}

func TestHashCommandIgnoresRuntimeFields(t *testing.T) {
	base := hashCommand(sampleCommand())

	withID := sampleCommand()
	withID.ID = "123456"
	withID.ApplicationID = "654321"
	withID.Version = "7"

	assert.Equal(t, base, hashCommand(withID))
}

func TestHashCommandChangesWithDescription(t *testing.T) {
	base := hashCommand(sampleCommand())

	changed := sampleCommand()
	changed.Description = "something else"

	assert.NotEqual(t, base, hashCommand(changed))
}

func TestHashCommandOptionOrderDoesNotMatter(t *testing.T) {
	a := sampleCommand()
	a.Options = append(a.Options, &discordgo.ApplicationCommandOption{
		Type: discordgo.ApplicationCommandOptionString, Name: "alpha", Description: "a",
	})

	b := sampleCommand()
	b.Options = append([]*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "alpha", Description: "a"},
	}, b.Options...)

	assert.Equal(t, hashCommand(a), hashCommand(b))
}
