// Package app wires configuration, storage and services for the commands.
package app

import (
	"fmt"
	"log"

	"github.com/fadedpez/tucotrainer/internal/config"
	"github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/fadedpez/tucotrainer/pkg/repositories/wallet"
	"github.com/fadedpez/tucotrainer/pkg/scheduler"
)

// Storage holds the repositories selected by the configuration
type Storage struct {
	Games   game.Repository
	Wallets wallet.Repository

	// Indices is set when Elasticsearch indexing is enabled
	Indices scheduler.IndexPruner

	closers []func() error
}

// OpenStorage builds the repositories for cfg. SQLite storage shares one
// database between round results and wallets. When ES_URL is set, results
// are also indexed in Elasticsearch.
func OpenStorage(cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.StorageType {
	case config.StorageSQLite:
		dbPath := cfg.DatabasePath()
		log.Printf("Initializing SQLite repository at %s", dbPath)
		db, err := game.OpenSQLite(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		s.Games = game.NewSQLiteRepositoryWithDB(db)
		s.Wallets = wallet.NewSQLiteRepository(db)
		s.closers = append(s.closers, db.Close)
	default:
		log.Println("Using in-memory repository for game data (data will be lost on restart)")
		s.Games = game.NewMemoryRepository()
		s.Wallets = wallet.NewMemoryRepository()
	}

	if cfg.ElasticsearchEnabled() {
		esConfig := game.DefaultElasticsearchConfig()
		esConfig.URL = cfg.ESURL
		esConfig.Username = cfg.ESUsername
		esConfig.Password = cfg.ESPassword

		esRepo, err := game.NewElasticsearchRepository(s.Games, esConfig)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize Elasticsearch repository: %w", err)
		}
		log.Printf("Indexing round results in Elasticsearch at %s", cfg.ESURL)
		s.Games = esRepo
		s.Indices = esRepo
	}

	return s, nil
}

// Close releases the underlying database, if any
func (s *Storage) Close() error {
	var firstErr error
	for _, closer := range s.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
