// Package simulation plays rounds with basic strategy to measure how the
// strategy table performs over many hands.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fadedpez/tucotrainer/internal/randutil"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"golang.org/x/sync/errgroup"
)

var ErrNoRounds = errors.New("rounds must be positive")

// Config selects how many rounds are played and how
type Config struct {
	Rounds int
	Seed   int64
	Bet    entities.Money

	// Workers splits the rounds across goroutines. Each worker shuffles
	// with its own generator derived from Seed, so a given Seed and Workers
	// pair always produces the same report.
	Workers int
}

// Report accumulates the outcome of every simulated round
type Report struct {
	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Doubles    int

	// Splits counts pairs basic strategy wanted split. Rounds do not split,
	// so those hands are played on as their total.
	Splits int

	Staked entities.Money
	Net    entities.Money

	sumNet  float64
	sumNet2 float64
}

// Add folds a finished round into the report
func (r *Report) Add(result *entities.RoundResult) {
	r.Rounds++
	switch result.Outcome {
	case entities.OutcomeWin:
		r.Wins++
	case entities.OutcomeBlackjack:
		r.Wins++
		r.Blackjacks++
	case entities.OutcomeLose:
		r.Losses++
	case entities.OutcomePush:
		r.Pushes++
	}
	if result.IsBust() {
		r.Busts++
	}
	if result.DoubledDown {
		r.Doubles++
	}

	net := result.Payout - result.Bet
	r.Staked += result.Bet
	r.Net += net
	base := result.Bet
	if result.DoubledDown {
		base /= 2
	}
	units := float64(net) / float64(base)
	r.sumNet += units
	r.sumNet2 += units * units
}

// Rate returns n as a percentage of the rounds played
func (r *Report) Rate(n int) float64 {
	if r.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(r.Rounds) * 100
}

// ReturnRate is the net result as a percentage of the money staked
func (r *Report) ReturnRate() float64 {
	if r.Staked == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Staked) * 100
}

// MeanUnits is the average result per round in units of the initial bet
func (r *Report) MeanUnits() float64 {
	if r.Rounds == 0 {
		return 0
	}
	return r.sumNet / float64(r.Rounds)
}

// StdError is the standard error of MeanUnits
func (r *Report) StdError() float64 {
	if r.Rounds < 2 {
		return 0
	}
	n := float64(r.Rounds)
	mean := r.MeanUnits()
	variance := (r.sumNet2 - n*mean*mean) / (n - 1)
	return math.Sqrt(variance / n)
}

// Merge folds another report into r
func (r *Report) Merge(o *Report) {
	r.Rounds += o.Rounds
	r.Wins += o.Wins
	r.Losses += o.Losses
	r.Pushes += o.Pushes
	r.Blackjacks += o.Blackjacks
	r.Busts += o.Busts
	r.Doubles += o.Doubles
	r.Splits += o.Splits
	r.Staked += o.Staked
	r.Net += o.Net
	r.sumNet += o.sumNet
	r.sumNet2 += o.sumNet2
}

// Run plays cfg.Rounds independent rounds, each from a fresh deck. The
// rounds are shared out across cfg.Workers goroutines and the partial
// reports are merged in worker order.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Rounds <= 0 {
		return nil, ErrNoRounds
	}
	if cfg.Bet <= 0 {
		return nil, blackjack.ErrInvalidBet
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Rounds {
		workers = cfg.Rounds
	}

	seeds := randutil.New(cfg.Seed)
	perWorker := cfg.Rounds / workers
	remainder := cfg.Rounds % workers
	partials := make([]*Report, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := seeds.Int64()

		g.Go(func() error {
			report, err := runWorker(ctx, rounds, seed, cfg.Bet)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			partials[w] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, p := range partials {
		report.Merge(p)
	}
	return report, nil
}

func runWorker(ctx context.Context, rounds int, seed int64, bet entities.Money) (*Report, error) {
	rng := randutil.New(seed)
	newDeck := func() *entities.Deck { return entities.NewDeckWithRand(rng) }
	completed := time.Unix(0, 0).UTC()
	clock := func() time.Time { return completed }

	report := &Report{}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := blackjack.NewRound("simulation", bet*2,
			blackjack.WithDeckFactory(newDeck), blackjack.WithClock(clock))

		split, err := Play(round, bet)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		if split {
			report.Splits++
		}

		result, err := round.Result()
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		report.Add(result)
	}
	return report, nil
}

// Play bets and follows basic strategy until the round is settled. A double
// that is no longer allowed becomes a hit, and a split becomes a hit below 17
// and a stand otherwise. It reports whether a split was recommended.
func Play(round *blackjack.Round, bet entities.Money) (bool, error) {
	if err := round.PlaceBet(bet); err != nil {
		return false, err
	}

	split := false
	for round.Status == entities.StatusPlaying {
		action, err := round.Hint()
		if err != nil {
			return split, err
		}

		switch action {
		case entities.ActionSplit:
			split = true
			if round.Player.Value() >= blackjack.DealerStandsAt {
				err = round.Stand()
			} else {
				err = round.Hit()
			}
		case entities.ActionDouble:
			if round.CanDouble() {
				err = round.Double()
			} else {
				err = round.Hit()
			}
		case entities.ActionStand:
			err = round.Stand()
		default:
			err = round.Hit()
		}
		if err != nil {
			return split, err
		}
	}
	return split, nil
}
