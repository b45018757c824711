package entities

import (
	"errors"
	"testing"

	"github.com/fadedpez/tucotrainer/internal/randutil"
	"github.com/stretchr/testify/suite"
)

type DeckTestSuite struct {
	suite.Suite
}

func TestDeckSuite(t *testing.T) {
	suite.Run(t, new(DeckTestSuite))
}

func (s *DeckTestSuite) assertStandardComposition(cards []Card) {
	s.Len(cards, StandardDeckSize, "Deck should have 52 cards")

	counts := make(map[Card]int)
	for _, card := range cards {
		s.True(card.Valid(), "Card %v should be valid", card)
		counts[card]++
	}
	s.Len(counts, StandardDeckSize, "Deck should have 52 distinct cards")
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			s.Equal(1, counts[NewCard(suit, rank)], "Card %s should appear exactly once", NewCard(suit, rank))
		}
	}
}

func (s *DeckTestSuite) TestNewDeckComposition() {
	for i := 0; i < 25; i++ {
		s.assertStandardComposition(NewDeck().Cards)
	}
}

func (s *DeckTestSuite) TestNewOrderedDeck() {
	deck := NewOrderedDeck()

	s.assertStandardComposition(deck.Cards)
	s.Equal(NewCard(Hearts, Ace), deck.Cards[0])
	s.Equal(NewCard(Hearts, King), deck.Cards[12])
	s.Equal(NewCard(Spades, King), deck.Cards[51])
}

func (s *DeckTestSuite) TestShufflePreservesComposition() {
	deck := NewOrderedDeck()
	deck.rng = randutil.New(7)

	deck.Shuffle()

	s.assertStandardComposition(deck.Cards)
	s.NotEqual(NewOrderedDeck().Cards, deck.Cards, "Shuffled deck should differ from ordered deck")
}

func (s *DeckTestSuite) TestSeededShuffleIsReproducible() {
	a := NewDeckWithRand(randutil.New(99))
	b := NewDeckWithRand(randutil.New(99))

	s.Equal(a.Cards, b.Cards, "Same seed should produce the same order")
}

func (s *DeckTestSuite) TestNewDeckDoesNotMutateExisting() {
	first := NewDeckWithRand(randutil.New(1))
	snapshot := append([]Card(nil), first.Cards...)

	_ = NewDeckWithRand(randutil.New(2))

	s.Equal(snapshot, first.Cards)
}

func (s *DeckTestSuite) TestDrawTakesFromTop() {
	deck := NewOrderedDeck()
	top := deck.Cards[len(deck.Cards)-1]

	card, err := deck.Draw()

	s.NoError(err)
	s.Equal(top, card, "Draw should return the last card")
	s.Equal(51, deck.Remaining())
}

func (s *DeckTestSuite) TestDrawExhaustion() {
	deck := NewDeck()
	seen := make(map[Card]bool)

	for i := 0; i < StandardDeckSize; i++ {
		card, err := deck.Draw()
		s.Require().NoError(err, "Draw %d should succeed", i+1)
		s.False(seen[card], "Card %s drawn twice", card)
		seen[card] = true
	}
	s.True(deck.IsEmpty())

	_, err := deck.Draw()
	s.True(errors.Is(err, ErrEmptyDeck), "53rd draw should fail with ErrEmptyDeck")
}

func (s *DeckTestSuite) TestNewStackedDeck() {
	deck := NewStackedDeck(NewCard(Spades, Ace), NewCard(Hearts, King))

	first, err := deck.Draw()
	s.NoError(err)
	second, err := deck.Draw()
	s.NoError(err)

	s.Equal(NewCard(Spades, Ace), first)
	s.Equal(NewCard(Hearts, King), second)
	s.True(deck.IsEmpty())
}
