package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/coder/quartz"
	"github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/fadedpez/tucotrainer/internal/games"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/internal/types"
)

const (
	interactionCleanupSize  = 100
	interactionCleanupEvery = 5 * time.Minute
)

// Bot connects the registered game managers to a Discord session
type Bot struct {
	session  discord.SessionHandler
	appID    string
	guildID  string
	registry *games.Registry
	clock    quartz.Clock

	// Commands are deleted on Stop when set, so development restarts
	// don't leave stale commands behind
	cleanupCommands bool

	mu       sync.Mutex
	commands []*discordgo.ApplicationCommand

	// Interaction tracking to prevent duplicates
	interactionMu         sync.Mutex
	processedInteractions map[string]time.Time
	lastCleanupTime       time.Time
}

// Option configures a Bot
type Option func(*Bot)

// WithGuild registers commands in a single guild instead of globally
func WithGuild(guildID string) Option {
	return func(b *Bot) {
		b.guildID = guildID
	}
}

// WithCommandCleanup deletes the registered commands on Stop
func WithCommandCleanup() Option {
	return func(b *Bot) {
		b.cleanupCommands = true
	}
}

// WithClock sets the clock used for interaction tracking
func WithClock(clock quartz.Clock) Option {
	return func(b *Bot) {
		b.clock = clock
	}
}

// NewBot creates a new instance of the bot
func NewBot(session discord.SessionHandler, appID string, registry *games.Registry, opts ...Option) *Bot {
	b := &Bot{
		session:               session,
		appID:                 appID,
		registry:              registry,
		clock:                 quartz.NewReal(),
		processedInteractions: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastCleanupTime = b.clock.Now()
	return b
}

// Start connects to Discord and registers every command in the registry
func (b *Bot) Start() error {
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logging.Default.Info("Connected as %s#%s", r.User.Username, r.User.Discriminator)
	})
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.HandleInteraction(i)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cmd := range b.registry.Commands() {
		created, err := b.session.ApplicationCommandCreate(b.appID, b.guildID, cmd)
		if err != nil {
			return fmt.Errorf("error creating command %s: %w", cmd.Name, err)
		}
		b.commands = append(b.commands, created)
		logging.Default.Info("Registered /%s", created.Name)
	}
	return nil
}

// Stop removes commands when cleanup is enabled and closes the connection
func (b *Bot) Stop() error {
	b.mu.Lock()
	if b.cleanupCommands {
		for _, cmd := range b.commands {
			if err := b.session.ApplicationCommandDelete(b.appID, b.guildID, cmd.ID); err != nil {
				logging.Default.Warn("Error deleting command %s: %v", cmd.Name, err)
			}
		}
		b.commands = nil
	}
	b.mu.Unlock()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}

// HandleInteraction routes a slash command or button press to its manager.
// Redelivered interactions are ignored.
func (b *Bot) HandleInteraction(i *discordgo.InteractionCreate) {
	if b.seen(i.ID) {
		logging.Default.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		manager, err := b.registry.ForCommand(name)
		if err != nil {
			logging.Default.Warn("Unknown command: %s", name)
			respondError(b.session, i, err)
			return
		}
		manager.HandleStart(b.session, i)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		manager, err := b.registry.ForButton(customID)
		if err != nil {
			logging.Default.Warn("Unknown component interaction: %s", customID)
			respondError(b.session, i, err)
			return
		}
		manager.HandleButton(b.session, i)

	default:
		logging.Default.Debug("Ignoring interaction type: %v", i.Type)
	}
}

// seen marks the interaction as processed and reports whether it already was
func (b *Bot) seen(id string) bool {
	b.interactionMu.Lock()
	defer b.interactionMu.Unlock()

	now := b.clock.Now()
	if _, processed := b.processedInteractions[id]; processed {
		return true
	}
	b.processedInteractions[id] = now

	if len(b.processedInteractions) > interactionCleanupSize && now.Sub(b.lastCleanupTime) > interactionCleanupEvery {
		cutoff := now.Add(-interactionCleanupEvery)
		for pid, at := range b.processedInteractions {
			if at.Before(cutoff) {
				delete(b.processedInteractions, pid)
			}
		}
		b.lastCleanupTime = now
		logging.Default.Debug("Cleaned up processed interactions, new size: %d", len(b.processedInteractions))
	}
	return false
}

// respondError sends the player-facing message for err, logging failures
// that aren't the player's doing
func respondError(s discord.SessionHandler, i *discordgo.InteractionCreate, err error) {
	gameErr := types.Classify(err)
	if gameErr.Code == types.ErrInternalError || gameErr.Code == types.ErrDatabaseError {
		logging.Default.LogError(gameErr)
	}
	if sendErr := discord.SendErrorResponse(s, i, gameErr); sendErr != nil {
		logging.Default.Error("Error sending error response: %v", sendErr)
	}
}
