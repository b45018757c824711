package game

import (
	"time"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// ESRoundResult represents a round result document in Elasticsearch
type ESRoundResult struct {
	RoundID     string       `json:"round_id"`
	PlayerID    string       `json:"player_id"`
	ChannelID   string       `json:"channel_id"`
	CompletedAt time.Time    `json:"completed_at"`
	PlayerCards []string     `json:"player_cards"`
	DealerCards []string     `json:"dealer_cards"`
	PlayerScore int          `json:"player_score"`
	DealerScore int          `json:"dealer_score"`
	Bet         int64        `json:"bet"`
	Payout      int64        `json:"payout"`
	Outcome     string       `json:"outcome"`
	Blackjack   bool         `json:"blackjack"`
	Busted      bool         `json:"busted"`
	DoubledDown bool         `json:"doubled_down"`
	Decisions   []ESDecision `json:"decisions"`
}

// ESDecision is one recommended-versus-taken move
type ESDecision struct {
	PlayerValue int    `json:"player_value"`
	Recommended string `json:"recommended"`
	Taken       string `json:"taken"`
	Followed    bool   `json:"followed"`
}

// ESTrainingAttempt represents a trainer answer document in Elasticsearch
type ESTrainingAttempt struct {
	AttemptID    string    `json:"attempt_id"`
	PlayerID     string    `json:"player_id"`
	ScenarioID   string    `json:"scenario_id"`
	AnsweredAt   time.Time `json:"answered_at"`
	PlayerCards  []string  `json:"player_cards"`
	DealerUpCard string    `json:"dealer_up_card"`
	Recommended  string    `json:"recommended"`
	Answered     string    `json:"answered"`
	Correct      bool      `json:"correct"`
}

const roundsMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"player_id": { "type": "keyword" },
			"channel_id": { "type": "keyword" },
			"completed_at": { "type": "date" },
			"player_cards": { "type": "keyword" },
			"dealer_cards": { "type": "keyword" },
			"player_score": { "type": "integer" },
			"dealer_score": { "type": "integer" },
			"bet": { "type": "long" },
			"payout": { "type": "long" },
			"outcome": { "type": "keyword" },
			"blackjack": { "type": "boolean" },
			"busted": { "type": "boolean" },
			"doubled_down": { "type": "boolean" },
			"decisions": {
				"type": "nested",
				"properties": {
					"player_value": { "type": "integer" },
					"recommended": { "type": "keyword" },
					"taken": { "type": "keyword" },
					"followed": { "type": "boolean" }
				}
			}
		}
	}
}`

const trainingMapping = `{
	"mappings": {
		"properties": {
			"attempt_id": { "type": "keyword" },
			"player_id": { "type": "keyword" },
			"scenario_id": { "type": "keyword" },
			"answered_at": { "type": "date" },
			"player_cards": { "type": "keyword" },
			"dealer_up_card": { "type": "keyword" },
			"recommended": { "type": "keyword" },
			"answered": { "type": "keyword" },
			"correct": { "type": "boolean" }
		}
	}
}`

func cardStrings(cards []entities.Card) []string {
	out := make([]string, len(cards))
	for i, card := range cards {
		out[i] = card.String()
	}
	return out
}

func toESRoundResult(result *entities.RoundResult) *ESRoundResult {
	decisions := make([]ESDecision, len(result.Decisions))
	for i, d := range result.Decisions {
		decisions[i] = ESDecision{
			PlayerValue: d.PlayerValue,
			Recommended: d.Recommended.String(),
			Taken:       d.Taken.String(),
			Followed:    d.Followed(),
		}
	}
	return &ESRoundResult{
		RoundID:     result.ID,
		PlayerID:    result.PlayerID,
		ChannelID:   result.ChannelID,
		CompletedAt: result.CompletedAt,
		PlayerCards: cardStrings(result.PlayerCards),
		DealerCards: cardStrings(result.DealerCards),
		PlayerScore: result.PlayerScore,
		DealerScore: result.DealerScore,
		Bet:         int64(result.Bet),
		Payout:      int64(result.Payout),
		Outcome:     result.Outcome.String(),
		Blackjack:   result.IsBlackjack(),
		Busted:      result.IsBust(),
		DoubledDown: result.DoubledDown,
		Decisions:   decisions,
	}
}

func toESTrainingAttempt(attempt *entities.TrainingAttempt) *ESTrainingAttempt {
	return &ESTrainingAttempt{
		AttemptID:    attempt.ID,
		PlayerID:     attempt.PlayerID,
		ScenarioID:   attempt.ScenarioID,
		AnsweredAt:   attempt.AnsweredAt,
		PlayerCards:  cardStrings(attempt.PlayerCards),
		DealerUpCard: attempt.DealerUpCard.String(),
		Recommended:  attempt.Recommended.String(),
		Answered:     attempt.Answered.String(),
		Correct:      attempt.Correct,
	}
}
