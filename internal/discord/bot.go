package discord

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/FrostlineTech/Marcus/internal/bot"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/config"
	"github.com/FrostlineTech/Marcus/internal/storage"
	"github.com/FrostlineTech/Marcus/pkg/cmd"
	"github.com/FrostlineTech/Marcus/pkg/util"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord runtime: it owns the session, dispatches events to
// registered commands and keeps slash registrations in sync.
type Bot struct {
	dg      *discordgo.Session
	storage *storage.Storage
	deps    *command.Deps
	cfg     *config.Config
}

// StartBot runs the Discord bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, deps *command.Deps) error {
	b := &Bot{
		cfg:     cfg,
		storage: store,
		deps:    deps,
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go func() {
		for evt := range bot.SystemEvents() {
			switch evt.Type {
			case bot.SystemEventRefreshCommands:
				go b.handleRefreshCommands(evt)
			}
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers
}

// onMessageCreate hands every incoming message to commands that opted in via
// MessageHandler. The commands gate themselves (mention, name drop, DM).
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	for _, c := range command.AllCommands() {
		adapter, ok := cmd.Root(c).(*command.DiscordAdapter)
		if !ok || !adapter.HandlesMessages() {
			continue
		}
		mctx := &command.MessageContext{
			Session: s,
			Event:   m,
			Storage: b.storage,
			Deps:    b.deps,
		}
		if err := c.Run(context.Background(), &cmd.Invocation{Data: mctx}); err != nil {
			log.Println("[ERR] Error running message command:", err)
		}
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	// Leave any blacklisted guilds on startup
	var guildIDs []string
	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.ID, g.Name)
			if err := s.GuildLeave(g.ID); err != nil {
				log.Printf("[ERR] Failed to leave guild %s: %v", g.ID, err)
			}
			continue
		}
		guildIDs = append(guildIDs, g.ID)
	}

	if b.cfg.InitSlashCommands {
		err := util.Parallel(guildIDs, 3, func(_ context.Context, guildID string) error {
			if err := b.registerCommands(guildID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", guildID, ":", err)
			}
			return nil
		})
		if err != nil {
			log.Println("[ERR] Slash command registration:", err)
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", botInfo.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Printf("[INFO] Leaving blacklisted guild: %s (%s)", g.Guild.ID, g.Guild.Name)
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Printf("[ERR] Failed to leave guild %s: %v", g.Guild.ID, err)
		}
		return
	}

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmdName := i.ApplicationCommandData().Name

		c, ok := command.GetCommand(cmdName)
		if !ok {
			log.Printf("[WARN] Unknown command: %s\n", cmdName)
			return
		}

		sctx := &command.SlashInteractionContext{
			Session: s,
			Event:   i,
			Storage: b.storage,
			Deps:    b.deps,
		}
		if err := c.Run(context.Background(), &cmd.Invocation{Data: sctx}); err != nil {
			log.Println("[ERR] Error running slash command:", err)
			bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("Error running slash command: %v", err),
			})
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID

		for _, c := range command.AllCommands() {
			if !strings.HasPrefix(customID, c.Name()) {
				continue
			}
			adapter, ok := cmd.Root(c).(*command.DiscordAdapter)
			if !ok {
				continue
			}
			cctx := &command.ComponentInteractionContext{
				Session: s,
				Event:   i,
				Storage: b.storage,
				Deps:    b.deps,
			}
			if err := adapter.Component(cctx); err != nil {
				log.Printf("[ERR] Error running component command %s: %v\n", c.Name(), err)
				bot.RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
					Description: fmt.Sprintf("Error running component command: %v", err),
				})
			}
			return
		}
		log.Printf("[WARN] No matching component for customID: %s\n", customID)
	}
}

// registerCommands syncs the guild's slash commands against the registry,
// using cached hashes to skip unchanged definitions.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	localHashes := loadGuildCommandHashes(guildID)

	var wanted []*discordgo.ApplicationCommand
	wantedHashes := make(map[string]string)
	for _, c := range command.AllCommands() {
		if def := normalizeDefinition(c); def != nil {
			wanted = append(wanted, def)
			wantedHashes[def.Name] = hashCommand(def)
		}
	}

	// Delete obsolete
	for _, old := range existing {
		if _, ok := wantedHashes[old.Name]; !ok {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
			delete(localHashes, old.Name)
		}
	}

	// Create or update changed commands
	var changed []*discordgo.ApplicationCommand
	for _, def := range wanted {
		if localHashes[def.Name] != wantedHashes[def.Name] {
			changed = append(changed, def)
		}
	}

	if len(changed) > 0 {
		log.Printf("[INFO] [%s] %d commands changed — updating with rate limit...", guildID, len(changed))
		registerCommandsWithRateLimit(b, guildID, changed)
		for _, def := range changed {
			localHashes[def.Name] = wantedHashes[def.Name]
		}
	}

	saveGuildCommandHashes(guildID, localHashes)
	return nil
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// normalizeDefinition extracts the slash definition behind a registered
// command, defaulting the type.
func normalizeDefinition(c cmd.Command) *discordgo.ApplicationCommand {
	slash, ok := cmd.Root(c).(command.SlashProvider)
	if !ok {
		return nil
	}
	def := slash.SlashDefinition()
	if def == nil {
		return nil
	}
	if def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

func registerCommandsWithRateLimit(b *Bot, guildID string, defs []*discordgo.ApplicationCommand) {
	rateLimit := time.Second / 40
	ticker := time.NewTicker(rateLimit)
	defer ticker.Stop()

	var wg sync.WaitGroup

	for _, job := range defs {
		wg.Add(1)

		go func(def *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			_, err := b.dg.ApplicationCommandCreate(b.dg.State.User.ID, guildID, def)
			if err != nil {
				log.Printf("[ERR] Can't create command %s: %v", def.Name, err)
			} else {
				log.Printf("[DONE] Command created: %s", def.Name)
			}
		}(job)
	}

	wg.Wait()
}

func (b *Bot) handleRefreshCommands(evt bot.SystemEvent) {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			log.Printf("[ERR][%s] Failed to fetch self: %v", evt.GuildID, err)
			return
		}
		appID = user.ID
	}

	existing, _ := b.dg.ApplicationCommands(appID, evt.GuildID)

	// A blacklisted guild loses everything.
	if b.isGuildBlacklisted(evt.GuildID) {
		log.Printf("[BLACKLIST][%s] Guild is blacklisted — removing all commands", evt.GuildID)
		for _, old := range existing {
			if err := b.dg.ApplicationCommandDelete(appID, evt.GuildID, old.ID); err != nil {
				log.Printf("[ERR][%s] Failed to delete command %s: %v", evt.GuildID, old.Name, err)
			} else {
				log.Printf("[DONE][%s] Deleted command %s", evt.GuildID, old.Name)
			}
		}
		return
	}

	// Group-specific enable/disable
	if strings.HasPrefix(evt.Target, "group:") {
		group := strings.TrimPrefix(evt.Target, "group:")
		disabledGroups, _ := b.storage.GetDisabledGroups(evt.GuildID)
		disabledMap := make(map[string]bool)
		for _, g := range disabledGroups {
			disabledMap[g] = true
		}

		for _, c := range command.AllCommands() {
			meta, ok := cmd.Root(c).(command.DiscordMeta)
			if !ok || meta.Group() != group {
				continue
			}

			found := false
			for _, ex := range existing {
				if ex.Name == c.Name() {
					found = true
					if disabledMap[group] {
						log.Printf("[INFO][%s] Deleting disabled command %s", evt.GuildID, c.Name())
						_ = b.dg.ApplicationCommandDelete(appID, evt.GuildID, ex.ID)
					}
					break
				}
			}

			if !found && !disabledMap[group] {
				if def := normalizeDefinition(c); def != nil {
					log.Printf("[INFO][%s] Registering enabled command %s", evt.GuildID, c.Name())
					_, _ = b.dg.ApplicationCommandCreate(appID, evt.GuildID, def)
				}
			}
		}
		return
	}

	// Refresh all commands
	if strings.ToLower(evt.Target) == "all" || evt.Target == "" {
		_ = b.registerCommands(evt.GuildID)
		return
	}

	// Refresh single command by name
	for _, c := range command.AllCommands() {
		if strings.EqualFold(c.Name(), evt.Target) {
			if def := normalizeDefinition(c); def != nil {
				_, _ = b.dg.ApplicationCommandCreate(appID, evt.GuildID, def)
			}
			return
		}
	}
}
