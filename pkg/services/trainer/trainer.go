package trainer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/google/uuid"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrAlreadyAnswered  = errors.New("scenario already answered")
	ErrInvalidAnswer    = errors.New("invalid answer")
)

// Scenario is one trainer question: a two-card hand against a dealer up-card
type Scenario struct {
	ID           string          `json:"id"`
	PlayerID     string          `json:"player_id"`
	PlayerCards  []entities.Card `json:"player_cards"`
	DealerUpCard entities.Card   `json:"dealer_up_card"`
	Recommended  entities.Action `json:"-"`
	Answered     bool            `json:"answered"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PlayerValues returns the dual value shown for the player's hand
func (s *Scenario) PlayerValues() blackjack.HandValues {
	return blackjack.CalculateHandValues(s.PlayerCards)
}

// Score is a running tally of answers in a session
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns the share of correct answers, rounded
func (s Score) Percentage() int {
	return entities.Percentage(s.Correct, s.Total)
}

// Grade is the outcome of answering a scenario
type Grade struct {
	ScenarioID  string          `json:"scenario_id"`
	Answer      entities.Action `json:"answer"`
	Correct     bool            `json:"correct"`
	Recommended entities.Action `json:"recommended"`
	Explanation string          `json:"explanation"`
	Score       Score           `json:"score"`
}

type session struct {
	current    *Scenario
	score      Score
	lastActive time.Time
}

// Service deals trainer scenarios and grades answers against basic strategy.
// One current scenario is kept per player; starting a new one discards the
// previous question.
type Service struct {
	repository game.Repository
	newDeck    func() *entities.Deck
	clock      quartz.Clock

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Service
type Option func(*Service)

// WithDeckFactory overrides how each scenario's deck is built
func WithDeckFactory(factory func() *entities.Deck) Option {
	return func(s *Service) {
		s.newDeck = factory
	}
}

// WithClock sets the clock used for timestamps and idle tracking
func WithClock(clock quartz.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a trainer that records every answer in repository
func NewService(repository game.Repository, opts ...Option) *Service {
	s := &Service{
		repository: repository,
		newDeck:    entities.NewDeck,
		clock:      quartz.NewReal(),
		sessions:   make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewScenario deals two player cards and a dealer up-card from a fresh deck
func (s *Service) NewScenario(ctx context.Context, playerID string) (*Scenario, error) {
	deck := s.newDeck()

	cards := make([]entities.Card, 0, blackjack.InitialCards+1)
	for i := 0; i < blackjack.InitialCards+1; i++ {
		card, err := deck.Draw()
		if err != nil {
			return nil, fmt.Errorf("error dealing scenario: %w", err)
		}
		cards = append(cards, card)
	}

	playerCards := cards[:blackjack.InitialCards]
	upCard := cards[blackjack.InitialCards]

	recommended, err := blackjack.Decide(playerCards, upCard)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	scenario := &Scenario{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		PlayerCards:  playerCards,
		DealerUpCard: upCard,
		Recommended:  recommended,
		CreatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(playerID)
	sess.current = scenario
	sess.lastActive = now

	return copyScenario(scenario), nil
}

// Current returns the player's open scenario, if any
func (s *Service) Current(playerID string) (*Scenario, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	if !ok || sess.current == nil {
		return nil, false
	}
	return copyScenario(sess.current), true
}

// Answer grades the player's action for the scenario and records the attempt
func (s *Service) Answer(ctx context.Context, playerID, scenarioID string, answer entities.Action) (*Grade, error) {
	if !answer.Valid() {
		return nil, ErrInvalidAnswer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	if !ok || sess.current == nil || sess.current.ID != scenarioID {
		return nil, ErrScenarioNotFound
	}
	scenario := sess.current
	if scenario.Answered {
		return nil, ErrAlreadyAnswered
	}

	now := s.clock.Now()
	correct := answer == scenario.Recommended
	attempt := &entities.TrainingAttempt{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		ScenarioID:   scenario.ID,
		PlayerCards:  scenario.PlayerCards,
		DealerUpCard: scenario.DealerUpCard,
		Recommended:  scenario.Recommended,
		Answered:     answer,
		Correct:      correct,
		AnsweredAt:   now,
	}
	if err := s.repository.SaveTrainingAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("error recording training attempt: %w", err)
	}

	scenario.Answered = true
	sess.score.Total++
	if correct {
		sess.score.Correct++
	}
	sess.lastActive = now

	return &Grade{
		ScenarioID:  scenario.ID,
		Answer:      answer,
		Correct:     correct,
		Recommended: scenario.Recommended,
		Explanation: Explain(scenario),
		Score:       sess.score,
	}, nil
}

// Score returns the player's running score for this session
func (s *Service) Score(playerID string) Score {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[playerID]; ok {
		return sess.score
	}
	return Score{}
}

// ResetScore clears the player's running score
func (s *Service) ResetScore(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[playerID]; ok {
		sess.score = Score{}
	}
}

// SweepIdle drops sessions with no activity for longer than maxIdle and
// returns how many were removed
func (s *Service) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-maxIdle)
	removed := 0
	for playerID, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, playerID)
			removed++
		}
	}
	return removed
}

// session returns the player's session, creating it. Callers hold s.mu.
func (s *Service) session(playerID string) *session {
	sess, ok := s.sessions[playerID]
	if !ok {
		sess = &session{}
		s.sessions[playerID] = sess
	}
	return sess
}

func copyScenario(sc *Scenario) *Scenario {
	c := *sc
	c.PlayerCards = append([]entities.Card(nil), sc.PlayerCards...)
	return &c
}

// Explain gives a short reason for the recommended action. Only the common
// hit and stand situations get a specific explanation.
func Explain(sc *Scenario) string {
	playerValue := blackjack.CalculateHandValue(sc.PlayerCards)

	// The up-card counts an Ace as 1 here
	dealerValue := int(sc.DealerUpCard.Rank)
	if dealerValue > 10 {
		dealerValue = 10
	}
	dealerDisplay := strconv.Itoa(dealerValue)
	if sc.DealerUpCard.IsAce() {
		dealerDisplay = "A"
	}

	switch sc.Recommended {
	case entities.ActionHit:
		if playerValue <= 11 {
			return "With a hand value of 11 or less, you can't bust, so always hit."
		}
		if playerValue <= 16 && dealerValue >= 7 {
			return fmt.Sprintf("With %d against dealer %s, the dealer has a strong upcard, so you need to improve your hand.", playerValue, dealerDisplay)
		}
	case entities.ActionStand:
		if playerValue >= 17 {
			return "With 17 or higher, you have a strong hand and should stand."
		}
		if playerValue >= 12 && dealerValue <= 6 {
			return fmt.Sprintf("With %d against dealer %s, the dealer is likely to bust, so stand.", playerValue, dealerDisplay)
		}
	}

	return "This follows basic strategy charts used by professional players."
}
