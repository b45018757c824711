package discord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/discord/mock"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	gameRepo "github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
	"github.com/stretchr/testify/suite"
)

type StatsManagerTestSuite struct {
	suite.Suite
	ctx       context.Context
	session   *mock.SessionHandler
	responses *[]*discordgo.InteractionResponse
	stats     *statistics.Service
	manager   *StatsManager
}

func TestStatsManagerSuite(t *testing.T) {
	suite.Run(t, new(StatsManagerTestSuite))
}

func (s *StatsManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	clock := quartz.NewMock(s.T())
	clock.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.session = &mock.SessionHandler{}
	s.responses = capture(s.session)
	s.stats = statistics.NewService(gameRepo.NewMemoryRepository(), clock)
	s.manager = NewStatsManager(s.stats)
}

func (s *StatsManagerTestSuite) last() *discordgo.InteractionResponse {
	s.Require().NotEmpty(*s.responses)
	return (*s.responses)[len(*s.responses)-1]
}

func (s *StatsManagerTestSuite) record(playerID string, outcome entities.Outcome, bet, payout entities.Money) {
	s.Require().NoError(s.stats.RecordRound(s.ctx, &entities.RoundResult{
		ID:          fmt.Sprintf("%s-%d", playerID, len(*s.responses)),
		PlayerID:    playerID,
		Bet:         bet,
		Payout:      payout,
		Outcome:     outcome,
		CompletedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
	}))
}

func (s *StatsManagerTestSuite) TestStatsShowsPlayerAndLeaderboard() {
	s.record("user1", entities.OutcomeWin, entities.Dollars(100), entities.Dollars(200))
	s.record("user2", entities.OutcomeLose, entities.Dollars(50), 0)

	s.manager.HandleStart(s.session, commandInteraction("i1", "user1", "stats"))

	resp := s.last()
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	s.Require().Len(resp.Data.Embeds, 2)

	player := resp.Data.Embeds[0]
	s.Equal("📊 Your Statistics", player.Title)
	s.Equal("1W-0L-0P", player.Fields[1].Value)
	s.Equal("$100", player.Fields[3].Value)

	board := resp.Data.Embeds[1]
	s.Equal("Showing page 1 of 1 (2 total players)", board.Description)
	s.Require().Len(board.Fields, 2)
	s.Contains(board.Fields[0].Name, "👑 <@user1>")
	s.Contains(board.Fields[1].Name, "🥈 <@user2>")

	s.Equal([]string{"stats_page:0", "stats_page:1:refresh", "stats_page:2"}, buttonIDs(resp.Data.Components))
}

func (s *StatsManagerTestSuite) TestEmptyLeaderboard() {
	s.manager.HandleStart(s.session, commandInteraction("i1", "user1", "stats"))

	board := s.last().Data.Embeds[1]
	s.Empty(board.Fields)
	s.Contains(board.Description, "No rounds played yet.")
}

func (s *StatsManagerTestSuite) TestPageButton() {
	for i := 0; i < 12; i++ {
		s.record(fmt.Sprintf("user%02d", i), entities.OutcomeWin, entities.Dollars(10), entities.Dollars(int64(20+i)))
	}

	s.manager.HandleButton(s.session, buttonInteraction("i1", "user01", "stats_page:2"))

	resp := s.last()
	s.Equal(discordgo.InteractionResponseUpdateMessage, resp.Type)
	s.Require().Len(resp.Data.Embeds, 1)
	s.Equal("Showing page 2 of 2 (12 total players)", resp.Data.Embeds[0].Description)
	s.Len(resp.Data.Embeds[0].Fields, 2)
}

func (s *StatsManagerTestSuite) TestBadPage() {
	s.manager.HandleButton(s.session, buttonInteraction("i1", "user1", "stats_page:abc"))

	s.Equal("❗ Unknown page.", s.last().Data.Content)
}

func (s *StatsManagerTestSuite) TestHugePageOnEmptyLeaderboard() {
	s.manager.HandleButton(s.session, buttonInteraction("i1", "user1", "stats_page:4611686018427387905"))

	resp := s.last()
	s.Equal(discordgo.InteractionResponseUpdateMessage, resp.Type)
	s.Require().Len(resp.Data.Embeds, 1)
	s.Contains(resp.Data.Embeds[0].Description, "No rounds played yet.")
}
