package blackjack

import (
	"errors"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// ErrHandStand is returned when acting on a hand that has already stood
var ErrHandStand = errors.New("hand is stand")

// Status represents the current state of the hand
type Status string

const (
	StatusPlaying Status = "PLAYING"
	StatusBust    Status = "BUST"
	StatusStand   Status = "STAND"
)

// Hand represents a player's or the dealer's cards in a round. Its value is
// always derived from Cards.
type Hand struct {
	Cards      []entities.Card
	Status     Status
	DoubledBet bool
}

// NewHand creates a new blackjack hand
func NewHand(cards ...entities.Card) *Hand {
	h := &Hand{
		Cards:  make([]entities.Card, 0, len(cards)+1),
		Status: StatusPlaying,
	}
	h.Cards = append(h.Cards, cards...)
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}
	return h
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card entities.Card) error {
	switch h.Status {
	case StatusBust:
		return ErrHandBust
	case StatusStand:
		return ErrHandStand
	}

	if !card.Valid() {
		return entities.ErrInvalidCard
	}

	h.Cards = append(h.Cards, card)

	// Auto-bust if score exceeds 21
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}

	return nil
}

// Stand marks the hand as stood
func (h *Hand) Stand() error {
	switch h.Status {
	case StatusBust:
		return ErrHandBust
	case StatusStand:
		return ErrHandStand
	}

	h.Status = StatusStand
	return nil
}

// Value returns the best possible score for the hand
func (h *Hand) Value() int {
	return CalculateHandValue(h.Cards)
}

// Values returns the hard/soft interpretation of the hand
func (h *Hand) Values() HandValues {
	return CalculateHandValues(h.Cards)
}

// IsBlackjack reports whether the hand is a natural
func (h *Hand) IsBlackjack() bool {
	return IsBlackjack(h.Cards)
}

// IsBust reports whether the hand exceeds 21
func (h *Hand) IsBust() bool {
	return h.Status == StatusBust
}

// UpCard returns the first card dealt to the hand
func (h *Hand) UpCard() (entities.Card, bool) {
	if len(h.Cards) == 0 {
		return entities.Card{}, false
	}
	return h.Cards[0], true
}

// Snapshot returns a copy of the hand's cards
func (h *Hand) Snapshot() []entities.Card {
	return append([]entities.Card(nil), h.Cards...)
}
