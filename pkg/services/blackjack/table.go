package blackjack

import (
	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// DefaultStartingBalance is the bankroll a new session starts with
var DefaultStartingBalance = entities.Dollars(1000)

// SessionStats counts settled rounds for a session
type SessionStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
}

// Table holds one player's session: the running balance, the counters and
// the round in progress. A Table is not safe for concurrent use.
type Table struct {
	PlayerID        string
	StartingBalance entities.Money
	Balance         entities.Money
	Stats           SessionStats
	Current         *Round

	opts []RoundOption
}

// NewTable creates a session with the given starting balance. The options
// are applied to every round the table creates.
func NewTable(playerID string, startingBalance entities.Money, opts ...RoundOption) *Table {
	if startingBalance <= 0 {
		startingBalance = DefaultStartingBalance
	}
	return &Table{
		PlayerID:        playerID,
		StartingBalance: startingBalance,
		Balance:         startingBalance,
		opts:            opts,
	}
}

// NewRound starts a round with the session balance. A broke player is reset
// to the starting balance with cleared counters first. It returns ErrInvalidAction while a round
// is still in play.
func (t *Table) NewRound() (*Round, error) {
	if t.Current != nil && t.Current.Status == entities.StatusPlaying {
		return nil, ErrInvalidAction
	}
	if t.Balance <= 0 {
		t.Reset()
	}

	opts := append([]RoundOption{}, t.opts...)
	opts = append(opts, withFinishHook(t.onFinish))
	t.Current = NewRound(t.PlayerID, t.Balance, opts...)
	return t.Current, nil
}

// Reset returns the session to its starting balance and clears the counters
func (t *Table) Reset() {
	t.Balance = t.StartingBalance
	t.Stats = SessionStats{}
}

// Bet starts a round if needed and places the bet on it
func (t *Table) Bet(amount entities.Money) (*Round, error) {
	round := t.Current
	if round == nil || round.Status != entities.StatusBetting {
		var err error
		if round, err = t.NewRound(); err != nil {
			return nil, err
		}
	}
	if err := round.PlaceBet(amount); err != nil {
		return round, err
	}
	if round.Status == entities.StatusPlaying {
		t.Balance = round.Balance
	}
	return round, nil
}

// Broke reports whether the player can no longer cover the smallest bet
func (t *Table) Broke() bool {
	return t.Balance < BetOptions[0]
}

func (t *Table) onFinish(r *Round) {
	t.Balance = r.Balance
	switch r.Outcome {
	case entities.OutcomeWin, entities.OutcomeBlackjack:
		t.Stats.Wins++
	case entities.OutcomeLose:
		t.Stats.Losses++
	case entities.OutcomePush:
		t.Stats.Pushes++
	}
}
