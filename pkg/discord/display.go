package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
)

const (
	colorTable   = 0xFFD700
	colorWin     = 0x2ECC71
	colorLose    = 0xE74C3C
	colorPush    = 0x95A5A6
	colorTrainer = 0x3498DB

	hiddenCard = "🂠"
)

var suitEmoji = map[entities.Suit]string{
	entities.Hearts:   "♥️",
	entities.Diamonds: "♦️",
	entities.Clubs:    "♣️",
	entities.Spades:   "♠️",
}

func formatCard(card entities.Card) string {
	return "`" + card.Rank.String() + "`" + suitEmoji[card.Suit]
}

func formatCards(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = formatCard(card)
	}
	return strings.Join(parts, " ")
}

// customID joins a button action with the values it carries
func customID(parts ...string) string {
	return strings.Join(parts, ":")
}

// splitCustomID returns the action and the values of a custom ID
func splitCustomID(id string) (string, []string) {
	parts := strings.Split(id, ":")
	return parts[0], parts[1:]
}

func button(label, id string, style discordgo.ButtonStyle, emoji string, disabled bool) discordgo.Button {
	b := discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: id,
		Disabled: disabled,
	}
	if emoji != "" {
		b.Emoji = &discordgo.ComponentEmoji{Name: emoji}
	}
	return b
}

func row(buttons ...discordgo.Button) discordgo.ActionsRow {
	components := make([]discordgo.MessageComponent, len(buttons))
	for i, b := range buttons {
		components[i] = b
	}
	return discordgo.ActionsRow{Components: components}
}

// roundEmbed shows the table. The dealer's hole card stays hidden until the
// round is finished.
func roundEmbed(table *blackjack.Table, round *blackjack.Round) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: colorTable,
	}

	balance := table.Balance
	if round != nil && round.Status != entities.StatusBetting {
		balance = round.Balance
	}

	if round == nil || round.Status == entities.StatusBetting {
		embed.Description = "Place your bet!"
	} else {
		embed.Description = round.Message()

		dealer := formatCards(round.Dealer.Cards)
		if round.Status == entities.StatusPlaying {
			if up, ok := round.Dealer.UpCard(); ok {
				dealer = formatCard(up) + " " + hiddenCard
			}
		}
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("Dealer (%s)", round.VisibleDealerValues().Display),
				Value:  dealer,
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("You (%s)", round.Player.Values().Display),
				Value:  formatCards(round.Player.Cards),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Bet",
				Value:  round.Bet.String(),
				Inline: true,
			},
		)

		if round.Status == entities.StatusFinished {
			switch round.Outcome {
			case entities.OutcomeWin, entities.OutcomeBlackjack:
				embed.Color = colorWin
			case entities.OutcomeLose:
				embed.Color = colorLose
			default:
				embed.Color = colorPush
			}
		}
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Balance",
		Value: balance.String(),
	})
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Session: %dW - %dL - %dP", table.Stats.Wins, table.Stats.Losses, table.Stats.Pushes),
	}
	return embed
}

// roundComponents returns the buttons for the round's state. Every custom ID
// carries the owner so other users cannot act on the table.
func roundComponents(owner string, table *blackjack.Table, round *blackjack.Round) []discordgo.MessageComponent {
	if round != nil && round.Status == entities.StatusPlaying {
		return []discordgo.MessageComponent{row(
			button("Hit", customID(actionHit, owner), discordgo.PrimaryButton, "👊", false),
			button("Stand", customID(actionStand, owner), discordgo.SecondaryButton, "✋", false),
			button("Double", customID(actionDouble, owner), discordgo.SuccessButton, "💰", !round.CanDouble()),
			button("Hint", customID(actionHint, owner), discordgo.SecondaryButton, "💡", false),
		)}
	}

	if round != nil && round.Status == entities.StatusFinished {
		return []discordgo.MessageComponent{row(
			button("New hand", customID(actionNew, owner), discordgo.PrimaryButton, "🔄", false),
		)}
	}

	balance := table.Balance
	if balance <= 0 {
		balance = table.StartingBalance
	}
	bets := make([]discordgo.Button, 0, len(blackjack.BetOptions))
	for _, amount := range blackjack.BetOptions {
		bets = append(bets, button(
			"Bet "+amount.String(),
			customID(actionBet, owner, fmt.Sprintf("%d", int64(amount))),
			discordgo.SuccessButton, "🪙", amount > balance,
		))
	}
	return []discordgo.MessageComponent{row(bets...)}
}

func scenarioLine(playerValues blackjack.HandValues, up entities.Card) string {
	return fmt.Sprintf("You have **%s** against a dealer **%s**.", playerValues.Display, up.Rank)
}
