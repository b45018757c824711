package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// cardInput accepts a card object such as {"suit":"hearts","rank":1} or a
// short code such as "AH"
type cardInput entities.Card

func (c *cardInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		card, err := entities.ParseCard(code)
		if err != nil {
			return err
		}
		*c = cardInput(card)
		return nil
	}

	var card entities.Card
	if err := json.Unmarshal(data, &card); err != nil {
		return err
	}
	if !card.Valid() {
		return fmt.Errorf("%w: %+v", entities.ErrInvalidCard, card)
	}
	*c = cardInput(card)
	return nil
}

func toCards(in []cardInput) []entities.Card {
	cards := make([]entities.Card, len(in))
	for i, c := range in {
		cards[i] = entities.Card(c)
	}
	return cards
}
