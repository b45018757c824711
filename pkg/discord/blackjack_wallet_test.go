package discord

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/discord/mock"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	gameRepo "github.com/fadedpez/tucotrainer/pkg/repositories/game"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
	mock_wallet_service "github.com/fadedpez/tucotrainer/pkg/services/wallet/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BlackjackWalletTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	wallets   *mock_wallet_service.MockWalletService
	clock     *quartz.Mock
	session   *mock.SessionHandler
	responses *[]*discordgo.InteractionResponse
}

func TestBlackjackWalletSuite(t *testing.T) {
	suite.Run(t, new(BlackjackWalletTestSuite))
}

func (s *BlackjackWalletTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.wallets = mock_wallet_service.NewMockWalletService(s.ctrl)
	s.clock = quartz.NewMock(s.T())
	s.clock.Set(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.session = &mock.SessionHandler{}
	s.responses = capture(s.session)
}

func (s *BlackjackWalletTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BlackjackWalletTestSuite) manager(decks ...[]string) *BlackjackManager {
	stats := statistics.NewService(gameRepo.NewMemoryRepository(), s.clock)
	return NewBlackjackManager(s.wallets, stats, s.clock, blackjack.WithDeckFactory(deckQueue(decks...)))
}

func (s *BlackjackWalletTestSuite) last() *discordgo.InteractionResponse {
	s.Require().NotEmpty(*s.responses)
	return (*s.responses)[len(*s.responses)-1]
}

func (s *BlackjackWalletTestSuite) TestSettledRoundIsBooked() {
	s.wallets.EXPECT().
		GetOrCreateWallet(gomock.Any(), "user1").
		Return(&entities.Wallet{UserID: "user1", Balance: entities.Dollars(1000)}, true, nil)
	s.wallets.EXPECT().
		RecordRound(gomock.Any(), "user1", gomock.Any(), entities.Dollars(100), entities.Dollars(200)).
		Return(&entities.Wallet{UserID: "user1", Balance: entities.Dollars(1100)}, nil)

	m := s.manager([]string{"10H", "9S", "QC", "7D", "10S"})
	m.HandleStart(s.session, commandInteraction("i1", "user1", "blackjack", intOption("bet", 100)))
	m.HandleButton(s.session, buttonInteraction("i2", "user1", "bj_stand:user1"))

	s.Equal(colorWin, s.last().Data.Embeds[0].Color)
}

func (s *BlackjackWalletTestSuite) TestWalletUnavailable() {
	s.wallets.EXPECT().
		GetOrCreateWallet(gomock.Any(), "user1").
		Return(nil, false, errors.New("database is locked"))

	m := s.manager()
	m.HandleStart(s.session, commandInteraction("i1", "user1", "blackjack"))

	s.Equal("💾 Couldn't open your wallet.", s.last().Data.Content)
}

func (s *BlackjackWalletTestSuite) TestBookingFailureKeepsTableBalance() {
	s.wallets.EXPECT().
		GetOrCreateWallet(gomock.Any(), "user1").
		Return(&entities.Wallet{UserID: "user1", Balance: entities.Dollars(1000)}, false, nil)
	s.wallets.EXPECT().
		RecordRound(gomock.Any(), "user1", gomock.Any(), entities.Dollars(100), entities.Dollars(0)).
		Return(nil, errors.New("database is locked"))

	// Player 10 + 6, dealer 9 + 8, player hits a king and busts
	m := s.manager([]string{"10H", "9S", "6C", "8D", "KS"})
	m.HandleStart(s.session, commandInteraction("i1", "user1", "blackjack", intOption("bet", 100)))
	m.HandleButton(s.session, buttonInteraction("i2", "user1", "bj_hit:user1"))

	resp := s.last()
	s.Equal(discordgo.InteractionResponseUpdateMessage, resp.Type)
	s.Equal(colorLose, resp.Data.Embeds[0].Color)
	s.Equal(entities.Dollars(900), m.tables["user1"].table.Balance)
}

func (s *BlackjackWalletTestSuite) footers(resp *discordgo.InteractionResponse) []string {
	var texts []string
	for _, embed := range resp.Data.Embeds {
		if embed.Footer != nil {
			texts = append(texts, embed.Footer.Text)
		}
	}
	return texts
}

func (s *BlackjackWalletTestSuite) TestBrokePlayerStartsFreshSession() {
	s.wallets.EXPECT().
		GetOrCreateWallet(gomock.Any(), "user1").
		Return(&entities.Wallet{UserID: "user1", Balance: entities.Dollars(100)}, false, nil)
	s.wallets.EXPECT().
		RecordRound(gomock.Any(), "user1", gomock.Any(), entities.Dollars(100), entities.Dollars(0)).
		Return(&entities.Wallet{UserID: "user1", Balance: 0}, nil)
	s.wallets.EXPECT().
		ResetIfBroke(gomock.Any(), "user1").
		Return(&entities.Wallet{UserID: "user1", Balance: entities.Dollars(1000)}, true, nil)

	// Player 10 + 7, dealer 10 + 9
	m := s.manager([]string{"10H", "10D", "7C", "9S"})
	m.HandleStart(s.session, commandInteraction("i1", "user1", "blackjack", intOption("bet", 100)))
	m.HandleButton(s.session, buttonInteraction("i2", "user1", "bj_stand:user1"))
	s.Contains(s.footers(s.last()), "Session: 0W - 1L - 0P")

	m.HandleButton(s.session, buttonInteraction("i3", "user1", "bj_new:user1"))

	s.Contains(s.footers(s.last()), "Session: 0W - 0L - 0P")
	table := m.tables["user1"].table
	s.Equal(entities.Dollars(1000), table.Balance)
	s.Equal(blackjack.SessionStats{}, table.Stats)
}
