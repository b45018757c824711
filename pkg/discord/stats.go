package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
)

const (
	statsPrefix = "stats_"
	statsPage   = "stats_page"

	leaderboardPageSize = 10
)

// StatsManager shows player statistics and the leaderboard for /stats
type StatsManager struct {
	stats *statistics.Service
}

// NewStatsManager creates the /stats handler
func NewStatsManager(stats *statistics.Service) *StatsManager {
	return &StatsManager{stats: stats}
}

// Command implements games.Manager
func (m *StatsManager) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "View your statistics and the blackjack leaderboard",
	}
}

// ButtonPrefix implements games.Manager
func (m *StatsManager) ButtonPrefix() string {
	return statsPrefix
}

// HandleStart shows the caller's statistics with the first leaderboard page
func (m *StatsManager) HandleStart(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	player, err := m.stats.GetPlayerStatistics(ctx, discord.UserID(i))
	if err != nil {
		respondError(s, i, err)
		return
	}
	leaderboard, err := m.stats.GetLeaderboard(ctx, 1, leaderboardPageSize)
	if err != nil {
		respondError(s, i, err)
		return
	}

	r := &discord.Response{
		Embeds:     []*discordgo.MessageEmbed{playerEmbed(player), leaderboardEmbed(leaderboard)},
		Components: paginationComponents(leaderboard),
	}
	if err := discord.SendResponse(s, i, r); err != nil {
		logging.Default.Error("Error responding to stats command: %v", err)
	}
}

// HandleButton turns the leaderboard page
func (m *StatsManager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	action, values := splitCustomID(i.MessageComponentData().CustomID)
	if action != statsPage || len(values) == 0 {
		respondError(s, i, types.NewGameError(types.ErrInvalidAction, "Unknown button."))
		return
	}
	page, err := strconv.Atoi(values[0])
	if err != nil {
		respondError(s, i, types.WrapError(types.ErrInvalidArgument, "Unknown page.", err))
		return
	}

	leaderboard, err := m.stats.GetLeaderboard(context.Background(), page, leaderboardPageSize)
	if err != nil {
		respondError(s, i, err)
		return
	}

	r := discord.NewEmbedResponse(leaderboardEmbed(leaderboard), paginationComponents(leaderboard), false)
	if err := discord.UpdateResponse(s, i, r); err != nil {
		logging.Default.Error("Error responding to stats button: %v", err)
	}
}

func playerEmbed(stats *entities.PlayerStatistics) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📊 Your Statistics",
		Color: colorTable,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rounds", Value: strconv.Itoa(stats.RoundsPlayed), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW-%dL-%dP", stats.Wins, stats.Losses, stats.Pushes), Inline: true},
			{Name: "Win rate", Value: fmt.Sprintf("%.1f%%", stats.WinRate()), Inline: true},
			{Name: "Net", Value: stats.NetProfit().String(), Inline: true},
			{Name: "Blackjacks", Value: strconv.Itoa(stats.Blackjacks), Inline: true},
			{Name: "Doubles", Value: strconv.Itoa(stats.DoubleDowns), Inline: true},
			{Name: "Trainer", Value: fmt.Sprintf("%d/%d (%d%%)", stats.TrainingCorrect, stats.TrainingAttempts, stats.TrainingAccuracy()), Inline: true},
		},
	}
}

func leaderboardEmbed(leaderboard *statistics.Leaderboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎮 Blackjack Leaderboard 🎮",
		Description: fmt.Sprintf("Showing page %d of %d (%d total players)", leaderboard.CurrentPage, max(leaderboard.TotalPages, 1), leaderboard.TotalPlayers),
		Color:       colorWin,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "👑 = #1 Net | 🏆 = Most Rounds Played",
		},
		Timestamp: leaderboard.LastUpdated.Format(time.RFC3339),
	}

	if len(leaderboard.Players) == 0 {
		embed.Description += "\nNo rounds played yet. Try /blackjack!"
	}

	for _, player := range leaderboard.Players {
		var rankEmoji string
		switch player.Rank {
		case 1:
			rankEmoji = "👑 "
		case 2:
			rankEmoji = "🥈 "
		case 3:
			rankEmoji = "🥉 "
		default:
			rankEmoji = fmt.Sprintf("%d. ", player.Rank)
		}

		indicators := ""
		if player.IsTopPlayer {
			indicators = " 🏆"
		}

		extras := []string{}
		if player.Blackjacks > 0 {
			extras = append(extras, fmt.Sprintf("%d BJ", player.Blackjacks))
		}
		if player.DoubleDowns > 0 {
			extras = append(extras, fmt.Sprintf("%d DD", player.DoubleDowns))
		}
		if player.TrainingAttempts > 0 {
			extras = append(extras, fmt.Sprintf("trainer %d%%", player.TrainingAccuracy))
		}
		extraStr := ""
		if len(extras) > 0 {
			extraStr = "\n" + strings.Join(extras, ", ")
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s<@%s>%s", rankEmoji, player.PlayerID, indicators),
			Value: fmt.Sprintf("**Rounds:** %d | **Record:** %dW-%dL-%dP | **Win Rate:** %.1f%%\n**Net:** %s%s",
				player.RoundsPlayed, player.Wins, player.Losses, player.Pushes, player.WinRate, player.NetProfit, extraStr),
		})
	}

	return embed
}

func paginationComponents(leaderboard *statistics.Leaderboard) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{row(
		button("Previous", customID(statsPage, strconv.Itoa(leaderboard.CurrentPage-1)), discordgo.SecondaryButton, "⬅️",
			leaderboard.CurrentPage <= 1),
		button("Refresh", customID(statsPage, strconv.Itoa(leaderboard.CurrentPage), "refresh"), discordgo.SecondaryButton, "🔄", false),
		button("Next", customID(statsPage, strconv.Itoa(leaderboard.CurrentPage+1)), discordgo.SecondaryButton, "➡️",
			leaderboard.CurrentPage >= leaderboard.TotalPages),
	)}
}
