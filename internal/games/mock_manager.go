package games

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/discord"
	"github.com/stretchr/testify/mock"
)

// MockManager implements Manager for testing
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Command() *discordgo.ApplicationCommand {
	args := m.Called()
	return args.Get(0).(*discordgo.ApplicationCommand)
}

func (m *MockManager) ButtonPrefix() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockManager) HandleStart(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(s, i)
}

func (m *MockManager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(s, i)
}
