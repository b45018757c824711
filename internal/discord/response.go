package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/types"
)

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrRoundNotFound:     "🔍",
	types.ErrRoundInProgress:   "🎮",
	types.ErrInvalidAction:     "❌",
	types.ErrInvalidBet:        "🪙",
	types.ErrInsufficientFunds: "💸",
	types.ErrEmptyDeck:         "🃏",
	types.ErrHandBust:          "💥",
	types.ErrEmptyHand:         "🤷",
	types.ErrBadCard:           "❗",
	types.ErrScenarioNotFound:  "⏳",
	types.ErrAlreadyAnswered:   "✋",
	types.ErrCommandNotFound:   "⛔",
	types.ErrInvalidArgument:   "❗",
	types.ErrPermissionDenied:  "🚫",
	types.ErrInternalError:     "⚠️",
	types.ErrDatabaseError:     "💾",
}

// Response represents a Discord interaction response
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// NewResponse creates a new Response
func NewResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  false,
	}
}

// NewEphemeralResponse creates a new ephemeral Response (only visible to the user)
func NewEphemeralResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  true,
	}
}

// NewEmbedResponse creates a Response showing a single embed
func NewEmbedResponse(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) *Response {
	return &Response{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Ephemeral:  ephemeral,
	}
}

// NewErrorResponse creates a new error Response with the player-facing
// message for err
func NewErrorResponse(err error) *Response {
	if err == nil {
		return NewEphemeralResponse("❌ An error occurred", nil)
	}

	gameErr := types.Classify(err)
	emoji := ResponseEmoji[gameErr.Code]
	if emoji == "" {
		emoji = "❌"
	}
	return NewEphemeralResponse(fmt.Sprintf("%s %s", emoji, gameErr.Message), nil)
}

// SendResponse sends a response to a Discord interaction
func SendResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(r),
	})
}

// UpdateResponse updates the message the interaction came from
func UpdateResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(r),
	})
}

// SendGameResponse sends a game response
func SendGameResponse(s SessionHandler, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return SendResponse(s, i, NewResponse(content, components))
}

// UpdateGameResponse updates a game response
func UpdateGameResponse(s SessionHandler, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return UpdateResponse(s, i, NewResponse(content, components))
}

// SendErrorResponse sends an error response
func SendErrorResponse(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	return SendResponse(s, i, NewErrorResponse(err))
}

// UserID returns the ID of the user who triggered the interaction, in a
// guild or a DM
func UserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// Helper functions

func responseData(r *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      getFlags(r.Ephemeral),
	}
	// An empty component list clears the buttons on an updated message
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	return data
}

func getFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
