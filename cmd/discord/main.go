// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/FrostlineTech/Marcus/internal/command/chat"
	_ "github.com/FrostlineTech/Marcus/internal/command/core"
	_ "github.com/FrostlineTech/Marcus/internal/command/lore"
	_ "github.com/FrostlineTech/Marcus/internal/command/mood"
	_ "github.com/FrostlineTech/Marcus/internal/command/rage"

	"github.com/FrostlineTech/Marcus/internal/ai"
	"github.com/FrostlineTech/Marcus/internal/command"
	"github.com/FrostlineTech/Marcus/internal/config"
	"github.com/FrostlineTech/Marcus/internal/discord"
	moodengine "github.com/FrostlineTech/Marcus/internal/mood"
	"github.com/FrostlineTech/Marcus/internal/persona"
	ragetracker "github.com/FrostlineTech/Marcus/internal/rage"
	"github.com/FrostlineTech/Marcus/internal/speech"
	"github.com/FrostlineTech/Marcus/internal/storage"
	v "github.com/FrostlineTech/Marcus/internal/version"
	"github.com/FrostlineTech/Marcus/pkg/jobmgr"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	jm := jobmgr.NewManager(func(msg string) {
		log.Println("[INFO] job:", msg)
	})
	if err := jm.StartAsync("rage-sweeper", func(ctx context.Context) error {
		return storage.RunRageSweeper(ctx, store)
	}); err != nil {
		log.Fatal(err)
	}
	defer jm.Stop("rage-sweeper")

	composer := speech.NewComposer(ai.DefaultProvider(cfg), store)
	tracker := ragetracker.NewTracker(store, ragetracker.WithAngryLine(func(displayName string) string {
		return composer.AngryLine(context.Background(), displayName)
	}))

	deps := &command.Deps{
		Config:   cfg,
		Mood:     moodengine.NewEngine(),
		Rage:     tracker,
		Selector: persona.NewSelector(),
		Composer: composer,
		Jobs:     jm,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store, deps); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
