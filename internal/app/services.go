package app

import (
	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/config"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/scheduler"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
	"github.com/fadedpez/tucotrainer/pkg/services/wallet"
)

// Services are the domain services shared by the front ends
type Services struct {
	Clock      quartz.Clock
	Wallets    *wallet.Service
	Statistics *statistics.Service
	Trainer    *trainer.Service
}

// NewServices creates the services on top of storage
func NewServices(cfg *config.Config, storage *Storage, clock quartz.Clock) *Services {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Services{
		Clock:      clock,
		Wallets:    wallet.NewService(storage.Wallets, entities.Dollars(cfg.StartingBalanceDollars), wallet.WithClock(clock)),
		Statistics: statistics.NewService(storage.Games, clock),
		Trainer:    trainer.NewService(storage.Games, trainer.WithClock(clock)),
	}
}

// Maintenance returns the housekeeping tasks for storage. Session sweepers
// are added by the caller.
func Maintenance(storage *Storage, sweepers ...scheduler.IdleSweeper) scheduler.MaintenanceConfig {
	mc := scheduler.DefaultMaintenanceConfig()
	mc.Sweepers = sweepers
	mc.Indices = storage.Indices
	mc.Results = storage.Games
	return mc
}

// ConfigureLogging applies the configured log level to the default logger
func ConfigureLogging(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Default.SetLevel(level)
	return nil
}
