package discord

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/fadedpez/tucotrainer/pkg/services/wallet"
)

const (
	blackjackPrefix = "bj_"

	actionBet    = "bj_bet"
	actionHit    = "bj_hit"
	actionStand  = "bj_stand"
	actionDouble = "bj_double"
	actionHint   = "bj_hint"
	actionNew    = "bj_new"
)

// RoundRecorder stores finished rounds
type RoundRecorder interface {
	RecordRound(ctx context.Context, result *entities.RoundResult) error
}

type tableSession struct {
	table      *blackjack.Table
	lastActive time.Time
}

// BlackjackManager runs one table per player for the /blackjack command
type BlackjackManager struct {
	wallets   wallet.WalletService
	results   RoundRecorder
	roundOpts []blackjack.RoundOption
	clock     quartz.Clock

	mu     sync.Mutex
	tables map[string]*tableSession
}

// NewBlackjackManager creates the /blackjack handler. Round options are
// applied to every round, which lets tests stack the deck.
func NewBlackjackManager(wallets wallet.WalletService, results RoundRecorder, clock quartz.Clock, roundOpts ...blackjack.RoundOption) *BlackjackManager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &BlackjackManager{
		wallets:   wallets,
		results:   results,
		roundOpts: roundOpts,
		clock:     clock,
		tables:    make(map[string]*tableSession),
	}
}

// Command implements games.Manager
func (m *BlackjackManager) Command() *discordgo.ApplicationCommand {
	minBet := 1.0
	return &discordgo.ApplicationCommand{
		Name:        "blackjack",
		Description: "Play a hand of blackjack against the dealer",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "bet",
				Description: "Bet in whole dollars; leave empty to pick from buttons",
				MinValue:    &minBet,
			},
		},
	}
}

// ButtonPrefix implements games.Manager
func (m *BlackjackManager) ButtonPrefix() string {
	return blackjackPrefix
}

// HandleStart shows the player's table, betting right away when the bet
// option is given
func (m *BlackjackManager) HandleStart(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := discord.UserID(i)

	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.tableFor(ctx, userID, i.ChannelID)
	if err != nil {
		respondError(s, i, err)
		return
	}
	table := session.table

	if table.Current != nil && table.Current.Status == entities.StatusPlaying {
		m.respond(s, i, userID, table, table.Current, false)
		return
	}

	if err := m.resetIfBroke(ctx, userID, table); err != nil {
		respondError(s, i, err)
		return
	}

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bet" {
			bet = opt.IntValue()
		}
	}

	round, err := table.NewRound()
	if err != nil {
		respondError(s, i, err)
		return
	}

	if bet > 0 {
		round, err = m.bet(ctx, userID, table, entities.Dollars(bet))
		if err != nil {
			respondError(s, i, err)
			return
		}
	}

	m.respond(s, i, userID, table, round, false)
}

// HandleButton implements games.Manager
func (m *BlackjackManager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := discord.UserID(i)
	action, values := splitCustomID(i.MessageComponentData().CustomID)

	if len(values) == 0 || values[0] != userID {
		respondError(s, i, types.NewGameError(types.ErrPermissionDenied, "This isn't your table. Start your own with /blackjack."))
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.tables[userID]
	if !ok {
		respondError(s, i, types.NewGameError(types.ErrRoundNotFound, "Your table has closed. Start a new one with /blackjack."))
		return
	}
	session.lastActive = m.clock.Now()
	table := session.table
	round := table.Current

	var err error
	switch action {
	case actionBet:
		var cents int64
		if len(values) > 1 {
			cents, err = strconv.ParseInt(values[1], 10, 64)
		}
		if err != nil || cents <= 0 {
			respondError(s, i, blackjack.ErrInvalidBet)
			return
		}
		round, err = m.bet(ctx, userID, table, entities.Money(cents))

	case actionHit, actionStand, actionDouble:
		if round == nil {
			err = blackjack.ErrInvalidAction
			break
		}
		switch action {
		case actionHit:
			err = round.Hit()
		case actionStand:
			err = round.Stand()
		default:
			err = round.Double()
		}
		if err == nil && round.Status == entities.StatusFinished {
			m.finish(ctx, userID, round)
		}

	case actionHint:
		if round == nil {
			respondError(s, i, blackjack.ErrInvalidAction)
			return
		}
		hint, err := round.Hint()
		if err != nil {
			respondError(s, i, err)
			return
		}
		m.sendEphemeral(s, i, "💡 Basic strategy says **"+hint.String()+"**.")
		return

	case actionNew:
		if err = m.resetIfBroke(ctx, userID, table); err == nil {
			round, err = table.NewRound()
		}

	default:
		err = types.NewGameError(types.ErrInvalidAction, "Unknown button.")
	}

	if err != nil {
		respondError(s, i, err)
		return
	}
	m.respond(s, i, userID, table, round, true)
}

// SweepIdle closes tables with no activity for longer than maxIdle. A round
// in play is abandoned with its bet.
func (m *BlackjackManager) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-maxIdle)
	removed := 0
	for userID, session := range m.tables {
		if session.lastActive.Before(cutoff) {
			delete(m.tables, userID)
			removed++
		}
	}
	return removed
}

// tableFor returns the player's table, opening it with the wallet balance.
// Callers hold m.mu.
func (m *BlackjackManager) tableFor(ctx context.Context, userID, channelID string) (*tableSession, error) {
	if session, ok := m.tables[userID]; ok {
		session.lastActive = m.clock.Now()
		return session, nil
	}

	w, created, err := m.wallets.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "Couldn't open your wallet.", err)
	}
	if created {
		logging.Default.Info("Created wallet for %s with %s", userID, w.Balance)
	}

	opts := append([]blackjack.RoundOption{blackjack.WithChannel(channelID)}, m.roundOpts...)
	opts = append(opts, blackjack.WithClock(func() time.Time { return m.clock.Now() }))

	table := blackjack.NewTable(userID, 0, opts...)
	table.Balance = w.Balance

	session := &tableSession{table: table, lastActive: m.clock.Now()}
	m.tables[userID] = session
	return session, nil
}

// resetIfBroke refills an empty bankroll in the wallet and restarts the
// table session
func (m *BlackjackManager) resetIfBroke(ctx context.Context, userID string, table *blackjack.Table) error {
	if table.Balance > 0 {
		return nil
	}
	w, reset, err := m.wallets.ResetIfBroke(ctx, userID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "Couldn't reset your bankroll.", err)
	}
	if reset {
		logging.Default.Info("Reset bankroll for %s to %s", userID, w.Balance)
	}
	table.StartingBalance = w.Balance
	table.Reset()
	return nil
}

// bet places the bet, settling a natural at once
func (m *BlackjackManager) bet(ctx context.Context, userID string, table *blackjack.Table, amount entities.Money) (*blackjack.Round, error) {
	round, err := table.Bet(amount)
	if err != nil {
		return nil, err
	}
	if round.Status == entities.StatusFinished {
		m.finish(ctx, userID, round)
	}
	return round, nil
}

// finish books the settled round in the wallet and the statistics. Failures
// are logged; the table already holds the settled balance.
func (m *BlackjackManager) finish(ctx context.Context, userID string, round *blackjack.Round) {
	result, err := round.Result()
	if err != nil {
		logging.Default.LogError(err)
		return
	}

	if _, err := m.wallets.RecordRound(ctx, userID, round.ID, round.Bet, round.Payout); err != nil {
		logging.Default.LogError(types.WrapError(types.ErrDatabaseError, "recording round in wallet", err))
	}
	if err := m.results.RecordRound(ctx, result); err != nil {
		logging.Default.LogError(types.WrapError(types.ErrDatabaseError, "recording round result", err))
	}
}

func (m *BlackjackManager) respond(s discord.SessionHandler, i *discordgo.InteractionCreate, userID string, table *blackjack.Table, round *blackjack.Round, update bool) {
	r := discord.NewEmbedResponse(roundEmbed(table, round), roundComponents(userID, table, round), false)

	send := discord.SendResponse
	if update {
		send = discord.UpdateResponse
	}
	if err := send(s, i, r); err != nil {
		logging.Default.Error("Error responding to blackjack interaction: %v", err)
	}
}

func (m *BlackjackManager) sendEphemeral(s discord.SessionHandler, i *discordgo.InteractionCreate, content string) {
	if err := discord.SendResponse(s, i, discord.NewEphemeralResponse(content, nil)); err != nil {
		logging.Default.Error("Error responding to blackjack interaction: %v", err)
	}
}
