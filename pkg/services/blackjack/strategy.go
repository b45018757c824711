package blackjack

import (
	"errors"

	"github.com/fadedpez/tucotrainer/pkg/entities"
)

// Category is the tier of the strategy table a rule belongs to
type Category string

const (
	CategoryPair Category = "pair"
	CategorySoft Category = "soft"
	CategoryHard Category = "hard"
)

// Recommendation is the strategy table's answer together with the rule that
// produced it
type Recommendation struct {
	Action   entities.Action `json:"action"`
	Category Category        `json:"category"`
	Rule     string          `json:"rule"`
}

// situation holds everything the rule predicates look at
type situation struct {
	playerValue int
	dealerValue int
	liveAce     bool
	pair        bool
	pairRank    entities.Rank
}

type rule struct {
	name     string
	category Category
	applies  func(situation) bool
	decide   func(situation) entities.Action
}

func always(a entities.Action) func(situation) entities.Action {
	return func(situation) entities.Action { return a }
}

func when(cond func(situation) bool, then, otherwise entities.Action) func(situation) entities.Action {
	return func(s situation) entities.Action {
		if cond(s) {
			return then
		}
		return otherwise
	}
}

func pairOf(ranks ...entities.Rank) func(situation) bool {
	return func(s situation) bool {
		if !s.pair {
			return false
		}
		for _, r := range ranks {
			if s.pairRank == r {
				return true
			}
		}
		return false
	}
}

func soft(lo, hi int) func(situation) bool {
	return func(s situation) bool {
		return s.liveAce && s.playerValue != BlackjackValue && s.playerValue >= lo && s.playerValue <= hi
	}
}

func hard(lo, hi int) func(situation) bool {
	return func(s situation) bool {
		return s.playerValue >= lo && s.playerValue <= hi
	}
}

func dealerIn(values ...int) func(situation) bool {
	return func(s situation) bool {
		for _, v := range values {
			if s.dealerValue == v {
				return true
			}
		}
		return false
	}
}

func dealerBetween(lo, hi int) func(situation) bool {
	return func(s situation) bool {
		return s.dealerValue >= lo && s.dealerValue <= hi
	}
}

// The highest possible value of a hand that has not busted
const maxLive = BlackjackValue

// strategyTable is evaluated top to bottom; the first rule that applies wins.
// Pairs without a rule fall through to the soft and hard tiers.
var strategyTable = []rule{
	{"split aces and eights", CategoryPair, pairOf(entities.Ace, entities.Eight),
		always(entities.ActionSplit)},
	{"never split tens or fives", CategoryPair, pairOf(entities.Ten, entities.Five),
		always(entities.ActionStand)},
	{"nines stand against 7, 10 or ace", CategoryPair, pairOf(entities.Nine),
		when(dealerIn(7, 10, 11), entities.ActionStand, entities.ActionSplit)},
	{"small pairs split against 7 or lower", CategoryPair, pairOf(entities.Seven, entities.Six, entities.Three, entities.Two),
		when(dealerBetween(0, 7), entities.ActionSplit, entities.ActionHit)},
	{"hit fours", CategoryPair, pairOf(entities.Four),
		always(entities.ActionHit)},

	{"soft 19 or better stands", CategorySoft, soft(19, maxLive),
		always(entities.ActionStand)},
	{"soft 18 stands against 8 or lower", CategorySoft, soft(18, 18),
		when(dealerBetween(0, 8), entities.ActionStand, entities.ActionHit)},
	{"soft 13 to 17 doubles against 5 or 6", CategorySoft, soft(13, 17),
		when(dealerIn(5, 6), entities.ActionDouble, entities.ActionHit)},

	{"hard 17 or better stands", CategoryHard, hard(17, maxLive),
		always(entities.ActionStand)},
	{"hard 13 to 16 stands against 6 or lower", CategoryHard, hard(13, 16),
		when(dealerBetween(0, 6), entities.ActionStand, entities.ActionHit)},
	{"hard 12 stands against 4 to 6", CategoryHard, hard(12, 12),
		when(dealerBetween(4, 6), entities.ActionStand, entities.ActionHit)},
	{"hard 11 doubles against 10 or lower", CategoryHard, hard(11, 11),
		when(dealerBetween(0, 10), entities.ActionDouble, entities.ActionHit)},
	{"hard 10 doubles against 9 or lower", CategoryHard, hard(10, 10),
		when(dealerBetween(0, 9), entities.ActionDouble, entities.ActionHit)},
	{"hard 9 doubles against 3 to 6", CategoryHard, hard(9, 9),
		when(dealerBetween(3, 6), entities.ActionDouble, entities.ActionHit)},
	{"hard 8 or lower hits", CategoryHard, hard(0, 8),
		always(entities.ActionHit)},
}

// Preconditions checked by Decide and Recommend. Hand also returns
// ErrHandBust when acting on a busted hand.
var (
	ErrEmptyHand = errors.New("hand has no cards")
	ErrHandBust  = errors.New("hand is bust")
)

// Decide returns the basic-strategy action for the player's hand against the
// dealer's up-card. The hand must hold at least one card and must not be bust.
func Decide(playerHand []entities.Card, dealerUpCard entities.Card) (entities.Action, error) {
	rec, err := Recommend(playerHand, dealerUpCard)
	if err != nil {
		return 0, err
	}
	return rec.Action, nil
}

// Recommend is Decide plus the rule that fired
func Recommend(playerHand []entities.Card, dealerUpCard entities.Card) (Recommendation, error) {
	if len(playerHand) == 0 {
		return Recommendation{}, ErrEmptyHand
	}

	playerValue := CalculateHandValue(playerHand)
	if playerValue > BlackjackValue {
		return Recommendation{}, ErrHandBust
	}

	s := situation{
		playerValue: playerValue,
		dealerValue: CardValue(dealerUpCard),
		liveAce:     containsAce(playerHand),
		pair:        IsPair(playerHand),
	}
	if s.pair {
		s.pairRank = playerHand[0].Rank
	}

	for _, r := range strategyTable {
		if r.applies(s) {
			return Recommendation{Action: r.decide(s), Category: r.category, Rule: r.name}, nil
		}
	}

	// Unreachable for a live hand: the hard tier covers 0..21
	return Recommendation{Action: entities.ActionHit, Category: CategoryHard}, nil
}

func containsAce(cards []entities.Card) bool {
	for _, card := range cards {
		if card.IsAce() {
			return true
		}
	}
	return false
}
