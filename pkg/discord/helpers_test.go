package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/discord/mock"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	testifyMock "github.com/stretchr/testify/mock"
)

func commandInteraction(id, userID, name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        id,
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: "channel1",
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func buttonInteraction(id, userID, customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        id,
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: "channel1",
			Member:    &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
		},
	}
}

func intOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

// capture records every response the session is asked to send
func capture(session *mock.SessionHandler) *[]*discordgo.InteractionResponse {
	responses := &[]*discordgo.InteractionResponse{}
	session.On("InteractionRespond", testifyMock.Anything, testifyMock.Anything).
		Run(func(args testifyMock.Arguments) {
			*responses = append(*responses, args.Get(1).(*discordgo.InteractionResponse))
		}).
		Return(nil)
	return responses
}

// deckQueue hands out one stacked deck per call
func deckQueue(decks ...[]string) func() *entities.Deck {
	return func() *entities.Deck {
		if len(decks) == 0 {
			return entities.NewStackedDeck()
		}
		codes := decks[0]
		decks = decks[1:]
		cards, err := entities.ParseCards(codes)
		if err != nil {
			panic(err)
		}
		return entities.NewStackedDeck(cards...)
	}
}

// buttonIDs flattens the custom IDs of every button in the components
func buttonIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, b := range row.Components {
			if button, ok := b.(discordgo.Button); ok {
				ids = append(ids, button.CustomID)
			}
		}
	}
	return ids
}
