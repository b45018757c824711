package blackjack

import (
	"testing"
	"time"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/stretchr/testify/suite"
)

var hundred = entities.Dollars(100)

type RoundTestSuite struct {
	suite.Suite
	start entities.Money
}

func TestRoundSuite(t *testing.T) {
	suite.Run(t, new(RoundTestSuite))
}

func (s *RoundTestSuite) SetupTest() {
	s.start = entities.Dollars(1000)
}

// stacked deals the given codes in order: player, dealer, player, dealer,
// then any further draws
func (s *RoundTestSuite) stacked(codes ...string) RoundOption {
	deck := entities.NewStackedDeck(cards(s.T(), codes...)...)
	return WithDeckFactory(func() *entities.Deck { return deck })
}

func (s *RoundTestSuite) newRound(codes ...string) *Round {
	return NewRound("player1", s.start, s.stacked(codes...))
}

func (s *RoundTestSuite) TestPlaceBetDealsInOrder() {
	round := s.newRound("10H", "6D", "9C", "5S")

	s.Require().NoError(round.PlaceBet(hundred))
	s.Equal(entities.StatusPlaying, round.Status)
	s.Equal(cards(s.T(), "10H", "9C"), round.Player.Cards)
	s.Equal(cards(s.T(), "6D", "5S"), round.Dealer.Cards)
	s.Equal(entities.Dollars(900), round.Balance)
	s.Equal(hundred, round.Bet)
}

func (s *RoundTestSuite) TestPlaceBetErrors() {
	s.Run("zero bet", func() {
		round := s.newRound("10H", "6D", "9C", "5S")
		s.ErrorIs(round.PlaceBet(0), ErrInvalidBet)
		s.Equal(entities.StatusBetting, round.Status)
	})

	s.Run("bet above balance", func() {
		round := NewRound("player1", entities.Dollars(50), s.stacked("10H", "6D", "9C", "5S"))
		s.ErrorIs(round.PlaceBet(hundred), ErrInsufficientFunds)
		s.Equal(entities.Dollars(50), round.Balance)
	})

	s.Run("bet twice", func() {
		round := s.newRound("10H", "6D", "9C", "5S")
		s.Require().NoError(round.PlaceBet(hundred))
		s.ErrorIs(round.PlaceBet(hundred), ErrInvalidAction)
	})

	s.Run("deck runs out", func() {
		round := s.newRound("10H", "6D")
		s.ErrorIs(round.PlaceBet(hundred), entities.ErrEmptyDeck)
	})
}

func (s *RoundTestSuite) TestActionsBeforeBet() {
	round := s.newRound("10H", "6D", "9C", "5S")

	s.ErrorIs(round.Hit(), ErrInvalidAction)
	s.ErrorIs(round.Stand(), ErrInvalidAction)
	s.ErrorIs(round.Double(), ErrInvalidAction)
	_, err := round.Hint()
	s.ErrorIs(err, ErrInvalidAction)
}

func (s *RoundTestSuite) TestSettlement() {
	testCases := []struct {
		name        string
		deck        []string
		play        func(*Round) error
		outcome     entities.Outcome
		payout      entities.Money
		balance     entities.Money
		dealerCards int
	}{
		{
			name:        "natural pays three to two without dealer draw",
			deck:        []string{"AS", "9D", "KH", "7C", "5C"},
			play:        func(*Round) error { return nil },
			outcome:     entities.OutcomeBlackjack,
			payout:      entities.Dollars(250),
			balance:     entities.Dollars(1150),
			dealerCards: 2,
		},
		{
			name:        "natural against dealer 21 pushes",
			deck:        []string{"AS", "AD", "KH", "KC"},
			play:        func(*Round) error { return nil },
			outcome:     entities.OutcomePush,
			payout:      hundred,
			balance:     entities.Dollars(1000),
			dealerCards: 2,
		},
		{
			name:        "hit to bust loses without dealer draw",
			deck:        []string{"10H", "9D", "6C", "7C", "KS"},
			play:        func(r *Round) error { return r.Hit() },
			outcome:     entities.OutcomeLose,
			payout:      0,
			balance:     entities.Dollars(900),
			dealerCards: 2,
		},
		{
			name:        "dealer draws to 17 and player wins",
			deck:        []string{"10H", "6D", "9C", "5S", "2C", "4H"},
			play:        func(r *Round) error { return r.Stand() },
			outcome:     entities.OutcomeWin,
			payout:      entities.Dollars(200),
			balance:     entities.Dollars(1100),
			dealerCards: 4,
		},
		{
			name:        "dealer stands on soft 17",
			deck:        []string{"10H", "AS", "8C", "6D", "5C"},
			play:        func(r *Round) error { return r.Stand() },
			outcome:     entities.OutcomeWin,
			payout:      entities.Dollars(200),
			balance:     entities.Dollars(1100),
			dealerCards: 2,
		},
		{
			name:        "dealer bust pays even money",
			deck:        []string{"10H", "10D", "2C", "6S", "KS"},
			play:        func(r *Round) error { return r.Stand() },
			outcome:     entities.OutcomeWin,
			payout:      entities.Dollars(200),
			balance:     entities.Dollars(1100),
			dealerCards: 3,
		},
		{
			name:        "equal totals push",
			deck:        []string{"10H", "10D", "8C", "8S"},
			play:        func(r *Round) error { return r.Stand() },
			outcome:     entities.OutcomePush,
			payout:      hundred,
			balance:     entities.Dollars(1000),
			dealerCards: 2,
		},
		{
			name:        "lower total loses",
			deck:        []string{"10H", "10D", "7C", "9S"},
			play:        func(r *Round) error { return r.Stand() },
			outcome:     entities.OutcomeLose,
			payout:      0,
			balance:     entities.Dollars(900),
			dealerCards: 2,
		},
		{
			name:        "three card 21 is a regular win",
			deck:        []string{"5H", "10D", "6C", "7S", "KH"},
			play: func(r *Round) error {
				if err := r.Hit(); err != nil {
					return err
				}
				return r.Stand()
			},
			outcome:     entities.OutcomeWin,
			payout:      entities.Dollars(200),
			balance:     entities.Dollars(1100),
			dealerCards: 2,
		},
		{
			name:        "double down wins double",
			deck:        []string{"6D", "10S", "5C", "7H", "KH"},
			play:        func(r *Round) error { return r.Double() },
			outcome:     entities.OutcomeWin,
			payout:      entities.Dollars(400),
			balance:     entities.Dollars(1200),
			dealerCards: 2,
		},
		{
			name:        "double down bust loses both bets",
			deck:        []string{"10D", "10S", "2C", "7H", "KH"},
			play:        func(r *Round) error { return r.Double() },
			outcome:     entities.OutcomeLose,
			payout:      0,
			balance:     entities.Dollars(800),
			dealerCards: 2,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			round := s.newRound(tc.deck...)
			s.Require().NoError(round.PlaceBet(hundred))
			s.Require().NoError(tc.play(round))

			s.Equal(entities.StatusFinished, round.Status)
			s.Equal(tc.outcome, round.Outcome)
			s.Equal(tc.payout, round.Payout)
			s.Equal(tc.balance, round.Balance)
			s.Len(round.Dealer.Cards, tc.dealerCards)

			s.ErrorIs(round.Hit(), ErrInvalidAction, "no actions after settlement")
		})
	}
}

func (s *RoundTestSuite) TestDoubleRules() {
	s.Run("only on the opening two cards", func() {
		round := s.newRound("2H", "10D", "3C", "7S", "4D", "KH")
		s.Require().NoError(round.PlaceBet(hundred))
		s.Require().NoError(round.Hit())
		s.False(round.CanDouble())
		s.ErrorIs(round.Double(), ErrInvalidAction)
	})

	s.Run("needs balance to cover the bet", func() {
		round := NewRound("player1", hundred, s.stacked("6D", "10S", "5C", "7H", "KH"))
		s.Require().NoError(round.PlaceBet(hundred))
		s.False(round.CanDouble())
		s.ErrorIs(round.Double(), ErrInsufficientFunds)
		s.Equal(hundred, round.Bet)
	})

	s.Run("draws exactly one card", func() {
		round := s.newRound("2D", "10S", "3C", "7H", "2H", "2S")
		s.Require().NoError(round.PlaceBet(hundred))
		s.True(round.CanDouble())
		s.Require().NoError(round.Double())
		s.Len(round.Player.Cards, 3)
		s.True(round.Player.DoubledBet)

		result, err := round.Result()
		s.Require().NoError(err)
		s.True(result.DoubledDown)
		s.Equal(entities.Dollars(200), result.Bet)
	})
}

func (s *RoundTestSuite) TestHintAndDecisions() {
	round := s.newRound("10C", "10S", "6D", "7H", "KH")
	s.Require().NoError(round.PlaceBet(hundred))

	hint, err := round.Hint()
	s.Require().NoError(err)
	s.Equal(entities.ActionHit, hint, "hard 16 against a ten hits")

	s.Require().NoError(round.Stand())
	s.Equal([]entities.Decision{
		{PlayerValue: 16, Recommended: entities.ActionHit, Taken: entities.ActionStand},
	}, round.Decisions())
	s.False(round.Decisions()[0].Followed())
}

func (s *RoundTestSuite) TestVisibleDealerValues() {
	round := s.newRound("10H", "AS", "8C", "6D")
	s.Require().NoError(round.PlaceBet(hundred))

	s.Equal(HandValues{Hard: 1, Soft: 11, Display: "1/11"}, round.VisibleDealerValues())

	s.Require().NoError(round.Stand())
	s.Equal(HandValues{Hard: 7, Soft: 17, Display: "7/17"}, round.VisibleDealerValues())
}

func (s *RoundTestSuite) TestResult() {
	completed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	round := NewRound("player1", s.start,
		s.stacked("10H", "10D", "8C", "7S"),
		WithChannel("channel1"),
		WithClock(func() time.Time { return completed }),
	)

	_, err := round.Result()
	s.ErrorIs(err, ErrRoundNotFinished)

	s.Require().NoError(round.PlaceBet(hundred))
	s.Require().NoError(round.Stand())

	result, err := round.Result()
	s.Require().NoError(err)
	s.Equal(round.ID, result.ID)
	s.Equal("player1", result.PlayerID)
	s.Equal("channel1", result.ChannelID)
	s.Equal(18, result.PlayerScore)
	s.Equal(17, result.DealerScore)
	s.Equal(entities.OutcomeWin, result.Outcome)
	s.Equal(completed, result.CompletedAt)
	s.Len(result.Decisions, 1)
	s.Equal("You win $200!", round.Message())
}

func (s *RoundTestSuite) TestPayout() {
	testCases := []struct {
		outcome  entities.Outcome
		bet      entities.Money
		expected entities.Money
	}{
		{entities.OutcomeWin, hundred, entities.Dollars(200)},
		{entities.OutcomeBlackjack, hundred, entities.Dollars(250)},
		{entities.OutcomeBlackjack, entities.Dollars(25), entities.Money(6250)},
		{entities.OutcomePush, hundred, hundred},
		{entities.OutcomeLose, hundred, 0},
	}

	for _, tc := range testCases {
		s.Run(string(tc.outcome), func() {
			s.Equal(tc.expected, Payout(tc.outcome, tc.bet))
		})
	}
}
