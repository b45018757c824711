package entities

import "time"

// PlayerStatistics represents aggregated statistics for a player
type PlayerStatistics struct {
	PlayerID         string    `json:"player_id"`
	RoundsPlayed     int       `json:"rounds_played"`
	Wins             int       `json:"wins"`
	Losses           int       `json:"losses"`
	Pushes           int       `json:"pushes"`
	Blackjacks       int       `json:"blackjacks"`
	Busts            int       `json:"busts"`
	DoubleDowns      int       `json:"double_downs"`
	TotalBet         Money     `json:"total_bet"`
	TotalPayout      Money     `json:"total_payout"`
	TrainingAttempts int       `json:"training_attempts"`
	TrainingCorrect  int       `json:"training_correct"`
	LastUpdated      time.Time `json:"last_updated"`
}

// NetProfit calculates the player's net profit
func (s *PlayerStatistics) NetProfit() Money {
	return s.TotalPayout - s.TotalBet
}

// WinRate calculates the player's win rate as a percentage
func (s *PlayerStatistics) WinRate() float64 {
	if s.RoundsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.RoundsPlayed) * 100.0
}

// TrainingAccuracy returns the rounded percentage of correct trainer answers
func (s *PlayerStatistics) TrainingAccuracy() int {
	return Percentage(s.TrainingCorrect, s.TrainingAttempts)
}

// AddRound folds a finished round into the statistics
func (s *PlayerStatistics) AddRound(r *RoundResult) {
	s.RoundsPlayed++
	switch r.Outcome {
	case OutcomeWin:
		s.Wins++
	case OutcomeBlackjack:
		s.Wins++
		s.Blackjacks++
	case OutcomeLose:
		s.Losses++
	case OutcomePush:
		s.Pushes++
	}
	if r.IsBust() {
		s.Busts++
	}
	if r.DoubledDown {
		s.DoubleDowns++
	}
	s.TotalBet += r.Bet
	s.TotalPayout += r.Payout
	if r.CompletedAt.After(s.LastUpdated) {
		s.LastUpdated = r.CompletedAt
	}
}

// AddAttempt folds a trainer attempt into the statistics
func (s *PlayerStatistics) AddAttempt(a *TrainingAttempt) {
	s.TrainingAttempts++
	if a.Correct {
		s.TrainingCorrect++
	}
	if a.AnsweredAt.After(s.LastUpdated) {
		s.LastUpdated = a.AnsweredAt
	}
}

// Percentage returns part/total as a rounded percentage, 0 when total is 0
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}
