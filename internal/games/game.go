package games

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/discord"
)

// Manager handles the interactions of one slash command and its buttons
type Manager interface {
	// Command returns the slash command definition to register
	Command() *discordgo.ApplicationCommand

	// ButtonPrefix returns the custom ID prefix of the manager's buttons
	ButtonPrefix() string

	// HandleStart handles the slash command
	HandleStart(s discord.SessionHandler, i *discordgo.InteractionCreate)

	// HandleButton handles a button press whose custom ID has the prefix
	HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate)
}
