package game

import (
	"context"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_game

// Repository stores finished rounds, trainer answers and the per-player
// statistics aggregated from both. Listing methods return the most recent
// records first; a limit of zero or less returns everything.
type Repository interface {
	// Round results
	SaveRoundResult(ctx context.Context, result *entities.RoundResult) error
	GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error)
	GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.RoundResult, error)

	// Trainer answers
	SaveTrainingAttempt(ctx context.Context, attempt *entities.TrainingAttempt) error
	GetPlayerAttempts(ctx context.Context, playerID string, limit int) ([]*entities.TrainingAttempt, error)

	// Statistics
	GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error)
	GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error)

	// PruneResultsPerPlayer keeps only the most recent rounds for each player.
	// Statistics are not affected.
	PruneResultsPerPlayer(ctx context.Context, keep int) (int, error)

	// Close closes any resources used by the repository
	Close() error
}
