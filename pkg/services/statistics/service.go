package statistics

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/repositories/game"
)

// DefaultPlayersPerPage is used when a caller asks for a non-positive page size
const DefaultPlayersPerPage = 10

var ErrNoPlayerID = errors.New("player ID is required")

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository game.Repository
	clock      quartz.Clock
}

// NewService creates a new statistics service
func NewService(repository game.Repository, clock quartz.Clock) *Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		repository: repository,
		clock:      clock,
	}
}

// PlayerRank represents a player's statistics with ranking information
type PlayerRank struct {
	*entities.PlayerStatistics
	Rank             int            `json:"rank"`
	NetProfit        entities.Money `json:"net_profit"`
	WinRate          float64        `json:"win_rate"`
	ProfitRate       float64        `json:"profit_rate"`
	TrainingAccuracy int            `json:"training_accuracy"`
	IsTopWinner      bool           `json:"is_top_winner"`
	IsTopPlayer      bool           `json:"is_top_player"`
}

// Leaderboard represents a paginated leaderboard of player statistics
type Leaderboard struct {
	Players        []*PlayerRank `json:"players"`
	TotalPlayers   int           `json:"total_players"`
	CurrentPage    int           `json:"current_page"`
	TotalPages     int           `json:"total_pages"`
	PlayersPerPage int           `json:"players_per_page"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// RecordRound stores a finished round, which also folds it into the player's
// statistics
func (s *Service) RecordRound(ctx context.Context, result *entities.RoundResult) error {
	return s.repository.SaveRoundResult(ctx, result)
}

// GetPlayerStatistics returns the player's aggregated statistics. A player who
// has never played gets a zeroed record.
func (s *Service) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	if playerID == "" {
		return nil, ErrNoPlayerID
	}
	return s.repository.GetPlayerStatistics(ctx, playerID)
}

// GetLeaderboard retrieves a paginated leaderboard ordered by net profit
func (s *Service) GetLeaderboard(ctx context.Context, page, playersPerPage int) (*Leaderboard, error) {
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = DefaultPlayersPerPage
	}

	allStats, err := s.repository.GetAllPlayerStatistics(ctx)
	if err != nil {
		return nil, err
	}

	playerRanks := make([]*PlayerRank, 0, len(allStats))
	for _, stats := range allStats {
		// Trainer-only players have nothing to rank on
		if stats.RoundsPlayed == 0 {
			continue
		}

		var profitRate float64
		if stats.TotalBet > 0 {
			profitRate = float64(stats.NetProfit()) / float64(stats.TotalBet)
		}

		playerRanks = append(playerRanks, &PlayerRank{
			PlayerStatistics: stats,
			NetProfit:        stats.NetProfit(),
			WinRate:          stats.WinRate(),
			ProfitRate:       profitRate,
			TrainingAccuracy: stats.TrainingAccuracy(),
		})
	}

	sort.SliceStable(playerRanks, func(i, j int) bool {
		if playerRanks[i].NetProfit != playerRanks[j].NetProfit {
			return playerRanks[i].NetProfit > playerRanks[j].NetProfit
		}
		return playerRanks[i].PlayerID < playerRanks[j].PlayerID
	})

	if len(playerRanks) > 0 {
		playerRanks[0].IsTopWinner = true

		mostRoundsIdx := 0
		for i := 1; i < len(playerRanks); i++ {
			if playerRanks[i].RoundsPlayed > playerRanks[mostRoundsIdx].RoundsPlayed {
				mostRoundsIdx = i
			}
		}
		playerRanks[mostRoundsIdx].IsTopPlayer = true
	}

	for i := range playerRanks {
		playerRanks[i].Rank = i + 1
	}

	totalPlayers := len(playerRanks)
	totalPages := 0
	if totalPlayers > 0 {
		totalPages = (totalPlayers-1)/playersPerPage + 1
	}
	// page stays within 1..max(totalPages, 1) so start cannot overflow
	if page > totalPages {
		page = max(totalPages, 1)
	}

	start := (page - 1) * playersPerPage
	end := totalPlayers
	if playersPerPage < totalPlayers-start {
		end = start + playersPerPage
	}

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = playerRanks[start:end]
	}

	return &Leaderboard{
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    s.clock.Now(),
	}, nil
}
