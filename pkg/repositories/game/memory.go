package game

import (
	"context"
	"sort"
	"sync"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu       sync.RWMutex
	results  []*entities.RoundResult
	attempts []*entities.TrainingAttempt
	stats    map[string]*entities.PlayerStatistics
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		stats: make(map[string]*entities.PlayerStatistics),
	}
}

// SaveRoundResult stores a round result and folds it into the player's statistics
func (r *MemoryRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	if result == nil || result.PlayerID == "" {
		return ErrInvalidRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyResult(result)
	r.results = append(r.results, stored)
	r.statsFor(result.PlayerID).AddRound(stored)
	return nil
}

// GetPlayerResults retrieves a player's round results, newest first
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.filterResults(func(res *entities.RoundResult) bool { return res.PlayerID == playerID }, limit), nil
}

// GetChannelResults retrieves a channel's round results, newest first
func (r *MemoryRepository) GetChannelResults(ctx context.Context, channelID string, limit int) ([]*entities.RoundResult, error) {
	return r.filterResults(func(res *entities.RoundResult) bool { return res.ChannelID == channelID }, limit), nil
}

func (r *MemoryRepository) filterResults(match func(*entities.RoundResult) bool, limit int) []*entities.RoundResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.RoundResult{}
	for i := len(r.results) - 1; i >= 0; i-- {
		if !match(r.results[i]) {
			continue
		}
		out = append(out, copyResult(r.results[i]))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// SaveTrainingAttempt stores a trainer answer and folds it into the player's statistics
func (r *MemoryRepository) SaveTrainingAttempt(ctx context.Context, attempt *entities.TrainingAttempt) error {
	if attempt == nil || attempt.PlayerID == "" {
		return ErrInvalidRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *attempt
	stored.PlayerCards = append([]entities.Card(nil), attempt.PlayerCards...)
	r.attempts = append(r.attempts, &stored)
	r.statsFor(attempt.PlayerID).AddAttempt(&stored)
	return nil
}

// GetPlayerAttempts retrieves a player's trainer answers, newest first
func (r *MemoryRepository) GetPlayerAttempts(ctx context.Context, playerID string, limit int) ([]*entities.TrainingAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entities.TrainingAttempt{}
	for i := len(r.attempts) - 1; i >= 0; i-- {
		if r.attempts[i].PlayerID != playerID {
			continue
		}
		a := *r.attempts[i]
		out = append(out, &a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// GetPlayerStatistics returns the player's statistics, empty if the player
// has no records
func (r *MemoryRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.stats[playerID]
	if !ok {
		return &entities.PlayerStatistics{PlayerID: playerID}, nil
	}
	cp := *stats
	return &cp, nil
}

// GetAllPlayerStatistics returns statistics for every player, ordered by player ID
func (r *MemoryRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.PlayerStatistics, 0, len(r.stats))
	for _, stats := range r.stats {
		cp := *stats
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PlayerID < all[j].PlayerID })
	return all, nil
}

// PruneResultsPerPlayer drops all but the newest keep rounds for each player
func (r *MemoryRepository) PruneResultsPerPlayer(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, ErrInvalidRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]int)
	kept := make([]*entities.RoundResult, 0, len(r.results))
	for i := len(r.results) - 1; i >= 0; i-- {
		res := r.results[i]
		seen[res.PlayerID]++
		if seen[res.PlayerID] <= keep {
			kept = append(kept, res)
		}
	}

	pruned := len(r.results) - len(kept)
	// kept is newest first; restore insertion order
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	r.results = kept
	return pruned, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}

func (r *MemoryRepository) statsFor(playerID string) *entities.PlayerStatistics {
	stats, ok := r.stats[playerID]
	if !ok {
		stats = &entities.PlayerStatistics{PlayerID: playerID}
		r.stats[playerID] = stats
	}
	return stats
}

func copyResult(result *entities.RoundResult) *entities.RoundResult {
	cp := *result
	cp.PlayerCards = append([]entities.Card(nil), result.PlayerCards...)
	cp.DealerCards = append([]entities.Card(nil), result.DealerCards...)
	cp.Decisions = append([]entities.Decision(nil), result.Decisions...)
	return &cp
}
