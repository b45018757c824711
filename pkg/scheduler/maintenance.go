package scheduler

import (
	"context"
	"log"
	"time"
)

const (
	DefaultSweepInterval    = 5 * time.Minute
	DefaultSessionIdle      = 30 * time.Minute
	DefaultPruneInterval    = 24 * time.Hour
	DefaultResultsPerPlayer = 500
)

// IdleSweeper drops sessions that have been idle for longer than maxIdle
type IdleSweeper interface {
	SweepIdle(ctx context.Context, maxIdle time.Duration) int
}

// IndexPruner deletes search indices that fell out of the retention window
type IndexPruner interface {
	PruneOldIndices(ctx context.Context) ([]string, error)
}

// ResultPruner caps the stored round history per player
type ResultPruner interface {
	PruneResultsPerPlayer(ctx context.Context, keep int) (int, error)
}

// MaintenanceConfig selects the housekeeping tasks. Nil dependencies and
// non-positive intervals skip the task.
type MaintenanceConfig struct {
	Sweepers      []IdleSweeper
	SweepInterval time.Duration
	SessionIdle   time.Duration

	Indices       IndexPruner
	Results       ResultPruner
	PruneInterval time.Duration
	KeepResults   int
}

// DefaultMaintenanceConfig returns the intervals used by the commands
func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		SweepInterval: DefaultSweepInterval,
		SessionIdle:   DefaultSessionIdle,
		PruneInterval: DefaultPruneInterval,
		KeepResults:   DefaultResultsPerPlayer,
	}
}

// AddMaintenance registers the housekeeping tasks selected by config
func (s *Scheduler) AddMaintenance(config MaintenanceConfig) {
	if len(config.Sweepers) > 0 && config.SweepInterval > 0 {
		s.AddTask("session_sweep", config.SweepInterval, func(ctx context.Context) error {
			removed := 0
			for _, sweeper := range config.Sweepers {
				removed += sweeper.SweepIdle(ctx, config.SessionIdle)
			}
			if removed > 0 {
				log.Printf("Swept %d idle sessions", removed)
			}
			return nil
		})
	}

	if config.Indices != nil && config.PruneInterval > 0 {
		s.AddTask("index_pruning", config.PruneInterval, func(ctx context.Context) error {
			deleted, err := config.Indices.PruneOldIndices(ctx)
			if err != nil {
				return err
			}
			if len(deleted) > 0 {
				log.Printf("Pruned %d old indices: %v", len(deleted), deleted)
			}
			return nil
		})
	}

	if config.Results != nil && config.PruneInterval > 0 && config.KeepResults > 0 {
		s.AddTask("result_pruning", config.PruneInterval, func(ctx context.Context) error {
			deleted, err := config.Results.PruneResultsPerPlayer(ctx, config.KeepResults)
			if err != nil {
				return err
			}
			if deleted > 0 {
				log.Printf("Pruned %d old round results", deleted)
			}
			return nil
		})
	}
}
