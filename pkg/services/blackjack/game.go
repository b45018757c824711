package blackjack

import (
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/google/uuid"
)

var (
	ErrInvalidAction     = errors.New("invalid action for current round state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidBet        = errors.New("bet must be greater than zero")
	ErrRoundNotFinished  = errors.New("round not finished")
)

// Bet options offered by the front ends
var BetOptions = []entities.Money{
	entities.Dollars(25),
	entities.Dollars(50),
	entities.Dollars(100),
}

// RoundOption configures a Round
type RoundOption func(*Round)

// WithDeckFactory sets how the round builds its deck when the bet is placed
func WithDeckFactory(factory func() *entities.Deck) RoundOption {
	return func(r *Round) {
		r.newDeck = factory
	}
}

// WithChannel records the channel the round is played in
func WithChannel(channelID string) RoundOption {
	return func(r *Round) {
		r.ChannelID = channelID
	}
}

// WithClock overrides the time source used for CompletedAt
func WithClock(now func() time.Time) RoundOption {
	return func(r *Round) {
		r.now = now
	}
}

func withFinishHook(fn func(*Round)) RoundOption {
	return func(r *Round) {
		r.onFinish = fn
	}
}

// Round is a single player against the dealer, from bet to settlement.
// A Round is not safe for concurrent use.
type Round struct {
	ID        string
	PlayerID  string
	ChannelID string
	Status    entities.RoundStatus
	Balance   entities.Money
	Bet       entities.Money
	Player    *Hand
	Dealer    *Hand
	Outcome   entities.Outcome
	Payout    entities.Money

	deck        *entities.Deck
	doubled     bool
	decisions   []entities.Decision
	completedAt time.Time

	newDeck  func() *entities.Deck
	now      func() time.Time
	onFinish func(*Round)
}

// NewRound creates a round in the betting state with the player's balance
func NewRound(playerID string, balance entities.Money, opts ...RoundOption) *Round {
	r := &Round{
		ID:       uuid.New().String(),
		PlayerID: playerID,
		Status:   entities.StatusBetting,
		Balance:  balance,
		Player:   NewHand(),
		Dealer:   NewHand(),
		newDeck:  entities.NewDeck,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlaceBet takes the bet out of the balance and deals the opening cards:
// player, dealer, player, dealer. A player natural settles at once.
func (r *Round) PlaceBet(amount entities.Money) error {
	if r.Status != entities.StatusBetting {
		return ErrInvalidAction
	}
	if amount <= 0 {
		return ErrInvalidBet
	}
	if amount > r.Balance {
		return ErrInsufficientFunds
	}

	r.deck = r.newDeck()
	for i := 0; i < InitialCards; i++ {
		if err := r.deal(r.Player); err != nil {
			return err
		}
		if err := r.deal(r.Dealer); err != nil {
			return err
		}
	}

	r.Bet = amount
	r.Balance -= amount
	r.Status = entities.StatusPlaying

	if r.Player.IsBlackjack() {
		r.settle()
	}
	return nil
}

func (r *Round) deal(hand *Hand) error {
	card, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("failed to deal: %w", err)
	}
	return hand.AddCard(card)
}

// Hit draws one card for the player. A bust settles the round as a loss.
func (r *Round) Hit() error {
	if r.Status != entities.StatusPlaying {
		return ErrInvalidAction
	}
	r.record(entities.ActionHit)

	card, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("failed to hit: %w", err)
	}
	if err := r.Player.AddCard(card); err != nil {
		return err
	}

	if r.Player.IsBust() {
		r.settle()
	}
	return nil
}

// Stand ends the player's turn, plays the dealer out and settles
func (r *Round) Stand() error {
	if r.Status != entities.StatusPlaying {
		return ErrInvalidAction
	}
	r.record(entities.ActionStand)
	return r.finishPlayerTurn()
}

// Double doubles the bet, draws exactly one card and stands. It is only
// allowed on the opening two cards with enough balance to cover the bet again.
func (r *Round) Double() error {
	if r.Status != entities.StatusPlaying || len(r.Player.Cards) != InitialCards {
		return ErrInvalidAction
	}
	if r.Balance < r.Bet {
		return ErrInsufficientFunds
	}
	r.record(entities.ActionDouble)

	card, err := r.deck.Draw()
	if err != nil {
		return fmt.Errorf("failed to double: %w", err)
	}

	r.Balance -= r.Bet
	r.Bet *= 2
	r.doubled = true
	r.Player.DoubledBet = true

	if err := r.Player.AddCard(card); err != nil {
		return err
	}
	if r.Player.IsBust() {
		r.settle()
		return nil
	}
	return r.finishPlayerTurn()
}

// CanDouble reports whether Double is currently allowed
func (r *Round) CanDouble() bool {
	return r.Status == entities.StatusPlaying && len(r.Player.Cards) == InitialCards && r.Balance >= r.Bet
}

func (r *Round) finishPlayerTurn() error {
	if r.Player.Status == StatusPlaying {
		if err := r.Player.Stand(); err != nil {
			return err
		}
	}
	if err := r.playDealer(); err != nil {
		return err
	}
	r.settle()
	return nil
}

// playDealer draws while the dealer is below 17. A soft 17 stands.
func (r *Round) playDealer() error {
	for CalculateHandValue(r.Dealer.Cards) < DealerStandsAt {
		if err := r.deal(r.Dealer); err != nil {
			return err
		}
	}
	return nil
}

// Hint returns the basic-strategy action for the live hand
func (r *Round) Hint() (entities.Action, error) {
	if r.Status != entities.StatusPlaying {
		return 0, ErrInvalidAction
	}
	up, ok := r.Dealer.UpCard()
	if !ok {
		return 0, ErrInvalidAction
	}
	return Decide(r.Player.Cards, up)
}

func (r *Round) record(taken entities.Action) {
	recommended, err := r.Hint()
	if err != nil {
		return
	}
	r.decisions = append(r.decisions, entities.Decision{
		PlayerValue: r.Player.Value(),
		Recommended: recommended,
		Taken:       taken,
	})
}

// Decisions returns the recommended and taken action for every move so far
func (r *Round) Decisions() []entities.Decision {
	out := make([]entities.Decision, len(r.decisions))
	copy(out, r.decisions)
	return out
}

// VisibleDealerValues shows only the up-card while the player is acting and
// the whole dealer hand once the round is finished
func (r *Round) VisibleDealerValues() HandValues {
	if r.Status == entities.StatusFinished {
		return r.Dealer.Values()
	}
	up, ok := r.Dealer.UpCard()
	if !ok {
		return CalculateHandValues(nil)
	}
	return CalculateHandValues([]entities.Card{up})
}

// settle decides the outcome and credits the payout to the balance
func (r *Round) settle() {
	playerScore := r.Player.Value()
	dealerScore := r.Dealer.Value()

	switch {
	case playerScore > BlackjackValue:
		r.Outcome = entities.OutcomeLose
	case dealerScore > BlackjackValue:
		r.Outcome = entities.OutcomeWin
	case playerScore == BlackjackValue && len(r.Player.Cards) == InitialCards && dealerScore != BlackjackValue:
		r.Outcome = entities.OutcomeBlackjack
	case playerScore > dealerScore:
		r.Outcome = entities.OutcomeWin
	case playerScore < dealerScore:
		r.Outcome = entities.OutcomeLose
	default:
		r.Outcome = entities.OutcomePush
	}

	r.Payout = Payout(r.Outcome, r.Bet)
	r.Balance += r.Payout
	r.Status = entities.StatusFinished
	r.completedAt = r.now()

	if r.onFinish != nil {
		r.onFinish(r)
	}
}

// Payout returns the amount credited back for a bet: 2x on a win, 2.5x on a
// blackjack, the bet itself on a push and nothing on a loss
func Payout(outcome entities.Outcome, bet entities.Money) entities.Money {
	switch outcome {
	case entities.OutcomeWin:
		return bet * 2
	case entities.OutcomeBlackjack:
		return bet.MulRatio(5, 2)
	case entities.OutcomePush:
		return bet
	default:
		return 0
	}
}

// Result returns the record of a finished round
func (r *Round) Result() (*entities.RoundResult, error) {
	if r.Status != entities.StatusFinished {
		return nil, ErrRoundNotFinished
	}
	return &entities.RoundResult{
		ID:          r.ID,
		PlayerID:    r.PlayerID,
		ChannelID:   r.ChannelID,
		PlayerCards: r.Player.Snapshot(),
		DealerCards: r.Dealer.Snapshot(),
		PlayerScore: r.Player.Value(),
		DealerScore: r.Dealer.Value(),
		Bet:         r.Bet,
		Payout:      r.Payout,
		Outcome:     r.Outcome,
		DoubledDown: r.doubled,
		Decisions:   r.Decisions(),
		CompletedAt: r.completedAt,
	}, nil
}

// Message is the line shown to the player for the round's current state
func (r *Round) Message() string {
	switch r.Status {
	case entities.StatusBetting:
		return "Place your bet!"
	case entities.StatusPlaying:
		return "Make your move!"
	}

	switch {
	case r.Outcome == entities.OutcomeBlackjack:
		return fmt.Sprintf("Blackjack! You win %s!", r.Payout)
	case r.Player.IsBust():
		return "Bust! You lose!"
	case r.Dealer.IsBust():
		return fmt.Sprintf("Dealer busts! You win %s!", r.Payout)
	case r.Outcome == entities.OutcomeWin:
		return fmt.Sprintf("You win %s!", r.Payout)
	case r.Outcome == entities.OutcomeLose:
		return "Dealer wins!"
	default:
		return "Push! Bet returned."
	}
}
