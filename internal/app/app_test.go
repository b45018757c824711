package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/config"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/fadedpez/tucotrainer/pkg/repositories/wallet"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *AppTestSuite) config(storageType string) *config.Config {
	return &config.Config{
		StorageType:            storageType,
		DataDir:                s.T().TempDir(),
		StartingBalanceDollars: 500,
		LogLevel:               "WARN",
	}
}

func (s *AppTestSuite) TestOpenMemoryStorage() {
	storage, err := OpenStorage(s.config(config.StorageMemory))
	s.Require().NoError(err)
	defer storage.Close()

	s.IsType(&game.MemoryRepository{}, storage.Games)
	s.IsType(&wallet.MemoryRepository{}, storage.Wallets)
	s.Nil(storage.Indices)
}

func (s *AppTestSuite) TestOpenSQLiteStorageSharesDatabase() {
	cfg := s.config(config.StorageSQLite)
	storage, err := OpenStorage(cfg)
	s.Require().NoError(err)

	s.FileExists(filepath.Join(cfg.DataDir, "tucotrainer.db"))
	s.IsType(&game.SQLiteRepository{}, storage.Games)
	s.IsType(&wallet.SQLiteRepository{}, storage.Wallets)

	clock := quartz.NewMock(s.T())
	clock.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	services := NewServices(cfg, storage, clock)

	w, created, err := services.Wallets.GetOrCreateWallet(s.ctx, "user1")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(entities.Dollars(500), w.Balance)

	s.Require().NoError(services.Statistics.RecordRound(s.ctx, &entities.RoundResult{
		ID: "r1", PlayerID: "user1", Bet: entities.Dollars(10), Outcome: entities.OutcomeLose, CompletedAt: clock.Now(),
	}))
	s.Require().NoError(storage.Close())

	// Reopen to check both repositories wrote to the same file
	reopened, err := OpenStorage(cfg)
	s.Require().NoError(err)
	defer reopened.Close()

	balance, err := reopened.Wallets.GetWallet(s.ctx, "user1")
	s.Require().NoError(err)
	s.Equal(entities.Dollars(500), balance.Balance)

	stats, err := reopened.Games.GetPlayerStatistics(s.ctx, "user1")
	s.Require().NoError(err)
	s.Equal(1, stats.RoundsPlayed)
}

func (s *AppTestSuite) TestMaintenance() {
	storage, err := OpenStorage(s.config(config.StorageMemory))
	s.Require().NoError(err)

	mc := Maintenance(storage)

	s.Equal(storage.Games, mc.Results)
	s.Nil(mc.Indices)
	s.Empty(mc.Sweepers)
}

func (s *AppTestSuite) TestConfigureLogging() {
	s.NoError(ConfigureLogging(&config.Config{LogLevel: "debug"}))
	s.Error(ConfigureLogging(&config.Config{LogLevel: "chatty"}))
	logging.Default.SetLevel(logging.INFO)
}
