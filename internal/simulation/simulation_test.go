package simulation

import (
	"context"
	"testing"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stacked(t *testing.T, codes ...string) blackjack.RoundOption {
	cards, err := entities.ParseCards(codes)
	require.NoError(t, err)
	return blackjack.WithDeckFactory(func() *entities.Deck { return entities.NewStackedDeck(cards...) })
}

func TestRunIsReproducible(t *testing.T) {
	cfg := Config{Rounds: 500, Seed: 42, Bet: entities.Dollars(10), Workers: 4}

	first, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunSplitsRoundsAcrossWorkers(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 2000} {
		report, err := Run(context.Background(), Config{Rounds: 1000, Seed: 3, Bet: entities.Dollars(10), Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, 1000, report.Rounds, "workers=%d", workers)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Rounds: 100, Seed: 1, Bet: entities.Dollars(10), Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCountsEveryRound(t *testing.T) {
	report, err := Run(context.Background(), Config{Rounds: 1000, Seed: 7, Bet: entities.Dollars(10), Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 1000, report.Rounds)
	assert.Equal(t, report.Rounds, report.Wins+report.Losses+report.Pushes)
	assert.LessOrEqual(t, report.Blackjacks, report.Wins)
	assert.LessOrEqual(t, report.Busts, report.Losses)
	assert.Equal(t, entities.Dollars(10)*1000+entities.Dollars(10)*entities.Money(report.Doubles), report.Staked)
	assert.InDelta(t, float64(report.Net)/float64(entities.Dollars(10))/1000, report.MeanUnits(), 1e-9)
}

func TestRunErrors(t *testing.T) {
	_, err := Run(context.Background(), Config{Rounds: 0, Bet: entities.Dollars(10)})
	assert.ErrorIs(t, err, ErrNoRounds)

	_, err = Run(context.Background(), Config{Rounds: 10})
	assert.ErrorIs(t, err, blackjack.ErrInvalidBet)
}

func TestPlay(t *testing.T) {
	testCases := []struct {
		name    string
		codes   []string
		outcome entities.Outcome
		doubled bool
		split   bool
	}{
		{
			name:    "doubles eleven",
			codes:   []string{"5H", "6S", "6C", "10D", "10H", "10S"},
			outcome: entities.OutcomeWin,
			doubled: true,
		},
		{
			name:    "stands on seventeen",
			codes:   []string{"10H", "10S", "7C", "8D"},
			outcome: entities.OutcomeLose,
		},
		{
			name:    "plays split eights as a hit",
			codes:   []string{"8H", "10S", "8C", "7D", "3S"},
			outcome: entities.OutcomeWin,
			split:   true,
		},
		{
			name:    "natural settles at once",
			codes:   []string{"AH", "10S", "KC", "9D"},
			outcome: entities.OutcomeBlackjack,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			round := blackjack.NewRound("p1", entities.Dollars(200), stacked(t, tc.codes...))

			split, err := Play(round, entities.Dollars(100))
			require.NoError(t, err)

			result, err := round.Result()
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, result.Outcome)
			assert.Equal(t, tc.doubled, result.DoubledDown)
			assert.Equal(t, tc.split, split)
		})
	}
}

func TestReportRates(t *testing.T) {
	report := &Report{}
	assert.Zero(t, report.Rate(1))
	assert.Zero(t, report.ReturnRate())
	assert.Zero(t, report.StdError())

	report.Add(&entities.RoundResult{Outcome: entities.OutcomeWin, Bet: 100, Payout: 200})
	report.Add(&entities.RoundResult{Outcome: entities.OutcomeLose, Bet: 100, PlayerScore: 24})

	assert.Equal(t, 50.0, report.Rate(report.Wins))
	assert.Equal(t, 1, report.Busts)
	assert.Equal(t, 0.0, report.ReturnRate())
	assert.InDelta(t, 1.0, report.StdError(), 1e-9)

	merged := &Report{}
	merged.Merge(report)
	merged.Merge(report)
	assert.Equal(t, 4, merged.Rounds)
	assert.Equal(t, 2, merged.Busts)
	assert.Equal(t, report.MeanUnits(), merged.MeanUnits())
}
