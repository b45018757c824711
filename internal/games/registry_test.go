package games

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry  *Registry
	blackjack *MockManager
	trainer   *MockManager
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func newMockManager(name, prefix string) *MockManager {
	m := &MockManager{}
	m.On("Command").Return(&discordgo.ApplicationCommand{Name: name})
	m.On("ButtonPrefix").Return(prefix)
	return m
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = NewRegistry()
	s.blackjack = newMockManager("blackjack", "bj_")
	s.trainer = newMockManager("trainer", "tr_")
}

func (s *RegistryTestSuite) TestNewRegistry() {
	registry := NewRegistry()

	s.NotNil(registry, "Registry should not be nil")
	s.NotNil(registry.managers, "Managers map should be initialized")
	s.Empty(registry.managers, "Managers map should be empty")
}

func (s *RegistryTestSuite) TestRegister() {
	err := s.registry.Register(s.blackjack)

	s.NoError(err, "Should register manager without error")
	manager, exists := s.registry.managers["blackjack"]
	s.True(exists, "Manager should be registered")
	s.Equal(s.blackjack, manager, "Registered manager should match")
}

func (s *RegistryTestSuite) TestRegisterDuplicate() {
	s.Require().NoError(s.registry.Register(s.blackjack))

	testCases := []struct {
		name    string
		manager *MockManager
	}{
		{name: "same command", manager: newMockManager("blackjack", "other_")},
		{name: "same prefix", manager: newMockManager("cards", "bj_")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := s.registry.Register(tc.manager)
			s.Error(err, "Should reject the duplicate")
			s.True(types.IsGameError(err, types.ErrInvalidAction), "Should return InvalidAction error")
		})
	}
}

func (s *RegistryTestSuite) TestForCommand() {
	s.Require().NoError(s.registry.Register(s.blackjack))

	manager, err := s.registry.ForCommand("blackjack")
	s.NoError(err)
	s.Equal(s.blackjack, manager)

	_, err = s.registry.ForCommand("poker")
	s.True(types.IsGameError(err, types.ErrCommandNotFound), "Should return CommandNotFound error")
}

func (s *RegistryTestSuite) TestForButton() {
	s.Require().NoError(s.registry.Register(s.blackjack))
	s.Require().NoError(s.registry.Register(s.trainer))

	testCases := []struct {
		name     string
		customID string
		expected *MockManager
	}{
		{name: "blackjack hit", customID: "bj_hit", expected: s.blackjack},
		{name: "blackjack bet", customID: "bj_bet_25", expected: s.blackjack},
		{name: "trainer answer", customID: "tr_double", expected: s.trainer},
		{name: "unknown", customID: "wallet_loan"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			manager, err := s.registry.ForButton(tc.customID)
			if tc.expected == nil {
				s.True(types.IsGameError(err, types.ErrCommandNotFound))
				return
			}
			s.NoError(err)
			s.Equal(tc.expected, manager)
		})
	}
}

func (s *RegistryTestSuite) TestCommands() {
	s.Require().NoError(s.registry.Register(s.trainer))
	s.Require().NoError(s.registry.Register(s.blackjack))

	commands := s.registry.Commands()
	s.Require().Len(commands, 2)
	s.Equal("blackjack", commands[0].Name)
	s.Equal("trainer", commands[1].Name)
}
