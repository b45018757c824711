package blackjack

import (
	"strconv"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

const (
	BlackjackValue = 21 // Best possible hand value
	DealerStandsAt = 17 // Dealer draws while below this value
	InitialCards   = 2  // Cards dealt to each hand at the start of a round

	aceHighBonus   = 10 // Difference between an Ace counted as 11 and as 1
	faceCardValue  = 10
	aceCountedHigh = 11
)

// HandValues is the dual interpretation of a hand's total
type HandValues struct {
	Hard    int    `json:"hard"`
	Soft    int    `json:"soft"`
	Display string `json:"display"`
}

// CardValue returns the card's value with an Ace counted as 11 and face
// cards as 10. It is also the dealer up-card normalization.
func CardValue(card entities.Card) int {
	switch {
	case card.IsAce():
		return aceCountedHigh
	case card.Rank > entities.Ten:
		return faceCardValue
	default:
		return int(card.Rank)
	}
}

// hardCardValue returns the card's value with an Ace counted as 1
func hardCardValue(card entities.Card) int {
	if card.Rank > entities.Ten {
		return faceCardValue
	}
	return int(card.Rank)
}

// CalculateHandValue returns the best non-busting interpretation of a hand.
// Every Ace starts at 11 and is demoted to 1, one at a time, while the total
// exceeds 21. An empty hand is worth 0.
func CalculateHandValue(cards []entities.Card) int {
	value := 0
	aces := 0

	for _, card := range cards {
		if card.IsAce() {
			aces++
		}
		value += CardValue(card)
	}

	for value > BlackjackValue && aces > 0 {
		value -= aceHighBonus
		aces--
	}

	return value
}

// CalculateHandValues returns the hard total (all Aces low), the soft total
// (one Ace high when the hand holds any) and the string a player is shown.
func CalculateHandValues(cards []entities.Card) HandValues {
	hard := 0
	hasAce := false

	for _, card := range cards {
		if card.IsAce() {
			hasAce = true
		}
		hard += hardCardValue(card)
	}

	soft := hard
	if hasAce {
		soft += aceHighBonus
	}

	var display string
	switch {
	case !hasAce, soft > BlackjackValue, hard == soft:
		display = strconv.Itoa(hard)
	case soft == BlackjackValue:
		display = strconv.Itoa(BlackjackValue)
	default:
		display = strconv.Itoa(hard) + "/" + strconv.Itoa(soft)
	}

	return HandValues{Hard: hard, Soft: soft, Display: display}
}

// IsBlackjack reports whether the hand is a natural: two cards worth 21
func IsBlackjack(cards []entities.Card) bool {
	return len(cards) == InitialCards && CalculateHandValue(cards) == BlackjackValue
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []entities.Card) bool {
	return CalculateHandValue(cards) > BlackjackValue
}

// IsPair reports whether the hand is exactly two cards of the same rank
func IsPair(cards []entities.Card) bool {
	return len(cards) == InitialCards && cards[0].Rank == cards[1].Rank
}
