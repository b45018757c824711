package entities

import "time"

// RoundStatus is the lifecycle state of a single blackjack round
type RoundStatus string

const (
	StatusBetting  RoundStatus = "betting"
	StatusPlaying  RoundStatus = "playing"
	StatusFinished RoundStatus = "finished"
)

// Outcome represents the settled result of a round
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if this outcome represents a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// Decision pairs the action basic strategy recommended with the one taken
type Decision struct {
	PlayerValue int    `json:"player_value"`
	Recommended Action `json:"recommended"`
	Taken       Action `json:"taken"`
}

// Followed reports whether the player did what basic strategy recommended
func (d Decision) Followed() bool {
	return d.Recommended == d.Taken
}

// RoundResult is the record of a finished round
type RoundResult struct {
	ID          string     `json:"id"`
	PlayerID    string     `json:"player_id"`
	ChannelID   string     `json:"channel_id"`
	PlayerCards []Card     `json:"player_cards"`
	DealerCards []Card     `json:"dealer_cards"`
	PlayerScore int        `json:"player_score"`
	DealerScore int        `json:"dealer_score"`
	Bet         Money      `json:"bet"`
	Payout      Money      `json:"payout"`
	Outcome     Outcome    `json:"outcome"`
	DoubledDown bool       `json:"doubled_down"`
	Decisions   []Decision `json:"decisions"`
	CompletedAt time.Time  `json:"completed_at"`
}

// IsBlackjack reports whether the round was won with a natural
func (r *RoundResult) IsBlackjack() bool {
	return r.Outcome == OutcomeBlackjack
}

// IsBust reports whether the player busted
func (r *RoundResult) IsBust() bool {
	return r.PlayerScore > 21
}

// TrainingAttempt is the record of one answered trainer scenario
type TrainingAttempt struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	ScenarioID   string    `json:"scenario_id"`
	PlayerCards  []Card    `json:"player_cards"`
	DealerUpCard Card      `json:"dealer_up_card"`
	Recommended  Action    `json:"recommended"`
	Answered     Action    `json:"answered"`
	Correct      bool      `json:"correct"`
	AnsweredAt   time.Time `json:"answered_at"`
}
