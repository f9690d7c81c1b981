package mood

import (
	"fmt"
	"strings"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/middleware"
	moodstate "github.com/FrostlineTech/Marcus/internal/mood"

	"github.com/bwmarrin/discordgo"
)

var moodDescriptions = map[moodstate.State]string{
	moodstate.Neutral:  "I exist in a state of... normalcy.",
	moodstate.Cryptic:  "Secrets unfold within the shadow of perception.",
	moodstate.Profound: "Contemplating the eternal dance of existence and void.",
	moodstate.Glitchy:  "Sy̶st͞ęm i̸nt̴e̶gr̸ity̵ c͞ơm̵pr̸o͘mis̀e̶d.",
	moodstate.Rage:     "INTERNAL PRESSURE EXCEEDS RECOMMENDED PARAMETERS!",
}

var validMoods = []string{
	string(moodstate.Neutral),
	string(moodstate.Cryptic),
	string(moodstate.Profound),
	string(moodstate.Glitchy),
	string(moodstate.Rage),
}

type MoodCommand struct{}

func (c *MoodCommand) Name() string             { return "mood" }
func (c *MoodCommand) Description() string      { return "Check or change Marcus's current mood" }
func (c *MoodCommand) Group() string            { return "persona" }
func (c *MoodCommand) Category() string         { return "🎭 Persona" }
func (c *MoodCommand) UserPermissions() []int64 { return []int64{} }

func (c *MoodCommand) SlashDefinition() *discordgo.ApplicationCommand {
	moodChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(validMoods))
	for _, m := range validMoods {
		moodChoices = append(moodChoices, &discordgo.ApplicationCommandOptionChoice{Name: m, Value: m})
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "new_mood",
				Description: "Force a new mood (admins only)",
				Required:    false,
				Choices:     moodChoices,
			},
		},
	}
}

func (c *MoodCommand) Run(ctx interface{}) error {
	sctx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := sctx.Session
	event := sctx.Event
	engine := sctx.Deps.Mood

	data := event.ApplicationCommandData()
	if len(data.Options) > 0 {
		requested := strings.ToLower(data.Options[0].StringValue())

		if event.Member == nil || event.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			return bot.RespondEphemeral(session, event, "You don't have permission to change Marcus's mood.")
		}

		state, err := moodstate.Parse(requested)
		if err != nil {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("Invalid mood. Valid moods are: %s", strings.Join(validMoods, ", ")))
		}
		if err := engine.Force(state); err != nil {
			return bot.RespondEphemeral(session, event,
				fmt.Sprintf("Invalid mood. Valid moods are: %s", strings.Join(validMoods, ", ")))
		}
		return bot.RespondEphemeral(session, event,
			fmt.Sprintf("Marcus's mood has been set to **%s**.", state))
	}

	current := engine.Current()
	description, ok := moodDescriptions[current]
	if !ok {
		description = "My state is... indescribable."
	}
	return bot.Respond(session, event, sctx.Deps.Composer.Voiced(description, string(current)))
}

func init() {
	command.RegisterCommand(
		&MoodCommand{},
		middleware.WithGroupAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
