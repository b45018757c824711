package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/tucotrainer/internal/app"
	"github.com/fadedpez/tucotrainer/internal/config"
	internalDiscord "github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/fadedpez/tucotrainer/internal/games"
	"github.com/fadedpez/tucotrainer/pkg/discord"
	"github.com/fadedpez/tucotrainer/pkg/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := app.ConfigureLogging(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	storage, err := app.OpenStorage(cfg)
	if err != nil {
		log.Fatalf("Error opening storage: %v", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	services := app.NewServices(cfg, storage, nil)

	blackjack := discord.NewBlackjackManager(services.Wallets, services.Statistics, services.Clock)
	registry := games.NewRegistry()
	for _, manager := range []games.Manager{
		blackjack,
		discord.NewTrainerManager(services.Trainer),
		discord.NewStatsManager(services.Statistics),
	} {
		if err := registry.Register(manager); err != nil {
			log.Fatalf("Error registering %s: %v", manager.Command().Name, err)
		}
	}

	session, err := internalDiscord.NewSession(cfg.Token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	opts := []discord.Option{discord.WithClock(services.Clock)}
	if cfg.GuildID != "" {
		opts = append(opts, discord.WithGuild(cfg.GuildID))
	}
	if cfg.IsDevelopment() {
		opts = append(opts, discord.WithCommandCleanup())
	}
	bot := discord.NewBot(session, cfg.AppID, registry, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(services.Clock)
	sched.AddMaintenance(app.Maintenance(storage, blackjack, services.Trainer))
	sched.Start(ctx)
	defer sched.Stop()

	if err := bot.Start(); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	log.Println("Bot is running. Press Ctrl+C to exit")

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}
}
