package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fadedpez/tucotrainer/internal/app"
	"github.com/fadedpez/tucotrainer/internal/config"
	"github.com/fadedpez/tucotrainer/pkg/api"
	"github.com/fadedpez/tucotrainer/pkg/scheduler"
)

type CLI struct {
	Addr    string `help:"Listen address; defaults to HTTP_ADDR"`
	Storage string `help:"Storage backend (memory or sqlite); defaults to STORAGE_TYPE"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("tucotrainer-server"),
		kong.Description("Blackjack hand valuation, basic strategy and trainer over HTTP."))

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)
	if cli.Addr != "" {
		cfg.HTTPAddr = cli.Addr
	}
	switch cli.Storage {
	case "":
	case config.StorageMemory, config.StorageSQLite:
		cfg.StorageType = cli.Storage
	default:
		kctx.Fatalf("--storage must be %q or %q", config.StorageMemory, config.StorageSQLite)
	}
	kctx.FatalIfErrorf(app.ConfigureLogging(cfg))

	storage, err := app.OpenStorage(cfg)
	kctx.FatalIfErrorf(err)
	defer storage.Close()

	services := app.NewServices(cfg, storage, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(services.Clock)
	sched.AddMaintenance(app.Maintenance(storage, services.Trainer))
	sched.Start(ctx)
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.NewServer(services.Trainer, services.Statistics).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("listening on %s (Ctrl+C to stop)", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("Server error: %v", err)
	}
	log.Println("Shutting down...")
}
