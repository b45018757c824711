package blackjack

import (
	"testing"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/stretchr/testify/assert"
)

func TestHandAddCard(t *testing.T) {
	hand := NewHand(cards(t, "10D", "6C")...)

	assert.NoError(t, hand.AddCard(card(t, "KS")))
	assert.Equal(t, StatusBust, hand.Status, "Hand should bust past 21")
	assert.Equal(t, 26, hand.Value())
	assert.ErrorIs(t, hand.AddCard(card(t, "2S")), ErrHandBust)
}

func TestHandStand(t *testing.T) {
	hand := NewHand(cards(t, "10D", "7C")...)

	assert.NoError(t, hand.Stand())
	assert.ErrorIs(t, hand.Stand(), ErrHandStand)
	assert.ErrorIs(t, hand.AddCard(card(t, "2S")), ErrHandStand)
}

func TestHandRejectsInvalidCard(t *testing.T) {
	hand := NewHand()

	assert.ErrorIs(t, hand.AddCard(entities.Card{}), entities.ErrInvalidCard)
	assert.Empty(t, hand.Cards)
}

func TestHandValues(t *testing.T) {
	hand := NewHand(cards(t, "AS", "6H")...)

	assert.Equal(t, 17, hand.Value())
	assert.Equal(t, "7/17", hand.Values().Display)
	assert.False(t, hand.IsBlackjack())

	up, ok := hand.UpCard()
	assert.True(t, ok)
	assert.Equal(t, card(t, "AS"), up)

	_, ok = NewHand().UpCard()
	assert.False(t, ok)
}

func TestHandSnapshotIsCopy(t *testing.T) {
	hand := NewHand(cards(t, "AS", "6H")...)
	snap := hand.Snapshot()
	snap[0] = card(t, "2C")

	assert.Equal(t, card(t, "AS"), hand.Cards[0])
}
