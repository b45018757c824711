package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the suits in deck construction order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	_, ok := suitSymbols[s]
	return ok
}

// Rank represents a card rank, 1 (Ace) through 13 (King)
type Rank int

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Valid reports whether r is within 1..13
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the short rank label (A, 2-10, J, Q, K)
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of the card, e.g. "A♠"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Valid reports whether both suit and rank are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// IsAce reports whether the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses short codes such as "AS", "10h", "KD" or "7♣"
func ParseCard(code string) (Card, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Card{}, fmt.Errorf("%w: empty code", ErrInvalidCard)
	}

	var suit Suit
	var rankPart string
	for s, sym := range suitSymbols {
		if strings.HasSuffix(code, sym) {
			suit = s
			rankPart = strings.TrimSuffix(code, sym)
		}
	}
	if suit == "" {
		last := strings.ToUpper(code[len(code)-1:])
		switch last {
		case "H":
			suit = Hearts
		case "D":
			suit = Diamonds
		case "C":
			suit = Clubs
		case "S":
			suit = Spades
		default:
			return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, code)
		}
		rankPart = code[:len(code)-1]
	}

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "T":
		rank = Ten
	default:
		n, err := strconv.Atoi(rankPart)
		if err != nil {
			return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, code)
		}
		rank = Rank(n)
	}

	card := Card{Suit: suit, Rank: rank}
	if !card.Valid() {
		return Card{}, fmt.Errorf("%w: rank out of range in %q", ErrInvalidCard, code)
	}
	return card, nil
}

// ParseCards parses a list of short codes
func ParseCards(codes []string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		card, err := ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// FormatCards joins card strings with spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
