package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
)

const (
	trainerPrefix = "tr_"

	trainerNext  = "tr_next"
	trainerReset = "tr_reset"
)

// trainerAnswers maps answer buttons to actions in display order
var trainerAnswers = []struct {
	id     string
	action entities.Action
	emoji  string
}{
	{"tr_hit", entities.ActionHit, "👊"},
	{"tr_stand", entities.ActionStand, "✋"},
	{"tr_double", entities.ActionDouble, "💰"},
	{"tr_split", entities.ActionSplit, "✂️"},
}

// TrainerManager quizzes players on basic strategy for the /trainer command
type TrainerManager struct {
	trainer *trainer.Service
}

// NewTrainerManager creates the /trainer handler
func NewTrainerManager(service *trainer.Service) *TrainerManager {
	return &TrainerManager{trainer: service}
}

// Command implements games.Manager
func (m *TrainerManager) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "trainer",
		Description: "Practice basic strategy decisions",
	}
}

// ButtonPrefix implements games.Manager
func (m *TrainerManager) ButtonPrefix() string {
	return trainerPrefix
}

// HandleStart deals the first scenario
func (m *TrainerManager) HandleStart(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.deal(s, i, false)
}

// HandleButton grades an answer or deals the next scenario
func (m *TrainerManager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	userID := discord.UserID(i)
	action, values := splitCustomID(i.MessageComponentData().CustomID)

	if len(values) == 0 || values[0] != userID {
		respondError(s, i, types.NewGameError(types.ErrPermissionDenied, "This isn't your quiz. Start your own with /trainer."))
		return
	}

	switch action {
	case trainerNext:
		m.deal(s, i, true)
		return
	case trainerReset:
		m.trainer.ResetScore(userID)
		m.deal(s, i, true)
		return
	}

	for _, answer := range trainerAnswers {
		if answer.id != action {
			continue
		}
		if len(values) < 2 {
			respondError(s, i, trainer.ErrScenarioNotFound)
			return
		}
		m.answer(s, i, userID, values[1], answer.action)
		return
	}

	respondError(s, i, types.NewGameError(types.ErrInvalidAction, "Unknown button."))
}

func (m *TrainerManager) deal(s discord.SessionHandler, i *discordgo.InteractionCreate, update bool) {
	userID := discord.UserID(i)

	scenario, err := m.trainer.NewScenario(context.Background(), userID)
	if err != nil {
		respondError(s, i, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎓 Basic Strategy Trainer",
		Description: scenarioLine(scenario.PlayerValues(), scenario.DealerUpCard) + "\nWhat's the play?",
		Color:       colorTrainer,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Dealer shows", Value: formatCard(scenario.DealerUpCard) + " " + hiddenCard, Inline: true},
			{Name: "Your hand", Value: formatCards(scenario.PlayerCards), Inline: true},
		},
		Footer: scoreFooter(m.trainer.Score(userID)),
	}

	buttons := make([]discordgo.Button, 0, len(trainerAnswers))
	for _, answer := range trainerAnswers {
		buttons = append(buttons, button(answer.action.String(), customID(answer.id, userID, scenario.ID),
			discordgo.PrimaryButton, answer.emoji, false))
	}

	m.send(s, i, discord.NewEmbedResponse(embed, []discordgo.MessageComponent{row(buttons...)}, false), update)
}

func (m *TrainerManager) answer(s discord.SessionHandler, i *discordgo.InteractionCreate, userID, scenarioID string, action entities.Action) {
	scenario, ok := m.trainer.Current(userID)
	if !ok || scenario.ID != scenarioID {
		respondError(s, i, trainer.ErrScenarioNotFound)
		return
	}

	grade, err := m.trainer.Answer(context.Background(), userID, scenarioID, action)
	if err != nil {
		respondError(s, i, err)
		return
	}

	verdict := "❌ Not quite."
	color := colorLose
	if grade.Correct {
		verdict = "✅ Correct!"
		color = colorWin
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎓 Basic Strategy Trainer",
		Description: fmt.Sprintf("%s\n%s\nYou chose **%s**. Basic strategy says **%s**.\n\n%s",
			verdict, scenarioLine(scenario.PlayerValues(), scenario.DealerUpCard),
			grade.Answer, grade.Recommended, grade.Explanation),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Dealer shows", Value: formatCard(scenario.DealerUpCard), Inline: true},
			{Name: "Your hand", Value: formatCards(scenario.PlayerCards), Inline: true},
		},
		Footer: scoreFooter(grade.Score),
	}

	components := []discordgo.MessageComponent{row(
		button("Next", customID(trainerNext, userID), discordgo.SuccessButton, "➡️", false),
		button("Reset score", customID(trainerReset, userID), discordgo.SecondaryButton, "🔄", false),
	)}

	m.send(s, i, discord.NewEmbedResponse(embed, components, false), true)
}

func scoreFooter(score trainer.Score) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Score: %d/%d (%d%%)", score.Correct, score.Total, score.Percentage()),
	}
}

func (m *TrainerManager) send(s discord.SessionHandler, i *discordgo.InteractionCreate, r *discord.Response, update bool) {
	send := discord.SendResponse
	if update {
		send = discord.UpdateResponse
	}
	if err := send(s, i, r); err != nil {
		logging.Default.Error("Error responding to trainer interaction: %v", err)
	}
}
