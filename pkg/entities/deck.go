package entities

import (
	"errors"
	rand "math/rand/v2"
)

// StandardDeckSize is the number of cards in a single standard deck
const StandardDeckSize = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered stack of cards. The top of the deck is the last element.
// A Deck is owned by a single round or training scenario and is not safe for
// concurrent use.
type Deck struct {
	Cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled deck of 52 cards, one of each rank and suit
func NewDeck() *Deck {
	return NewDeckWithRand(nil)
}

// NewDeckWithRand creates a new deck shuffled with r. A nil r uses the
// runtime's auto-seeded source.
func NewDeckWithRand(r *rand.Rand) *Deck {
	d := &Deck{Cards: orderedCards(), rng: r}
	d.Shuffle()
	return d
}

// NewOrderedDeck creates an unshuffled deck, suits in Suits order and ranks
// Ace through King within each suit
func NewOrderedDeck() *Deck {
	return &Deck{Cards: orderedCards()}
}

// NewStackedDeck creates a deck whose draws return cards in the given order
func NewStackedDeck(draws ...Card) *Deck {
	cards := make([]Card, len(draws))
	for i, card := range draws {
		cards[len(draws)-1-i] = card
	}
	return &Deck{Cards: cards}
}

func orderedCards() []Card {
	cards := make([]Card, 0, StandardDeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle performs a Fisher-Yates shuffle in place
func (d *Deck) Shuffle() {
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := d.intN(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

func (d *Deck) intN(n int) int {
	if d.rng != nil {
		return d.rng.IntN(n)
	}
	return rand.IntN(n)
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	last := len(d.Cards) - 1
	card := d.Cards[last]
	d.Cards = d.Cards[:last]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}
