package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewGameError() {
	// Setup
	code := ErrRoundNotFound
	message := "round not found"

	// Execute
	err := NewGameError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	code := ErrInternalError
	message := "database error"
	underlying := errors.New("connection failed")

	// Execute
	err := WrapError(code, message, underlying)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Equal(underlying, err.Err, "Underlying error should match")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *GameError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewGameError(ErrRoundNotFound, "round not found"),
			expected: "ROUND_NOT_FOUND: round not found",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrInternalError, "database error", errors.New("connection failed")),
			expected: "INTERNAL_ERROR: database error (connection failed)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error(), "Error string should match expected format")
		})
	}
}

func (s *ErrorTestSuite) TestIsGameError() {
	// Setup
	gameErr := NewGameError(ErrRoundNotFound, "round not found")
	regularErr := errors.New("regular error")

	// Test cases
	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching game error",
			err:      gameErr,
			code:     ErrRoundNotFound,
			expected: true,
		},
		{
			name:     "Non-matching game error",
			err:      gameErr,
			code:     ErrInternalError,
			expected: false,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			code:     ErrRoundNotFound,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrRoundNotFound,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := IsGameError(tc.err, tc.code)
			s.Equal(tc.expected, result, "IsGameError result should match expected value")
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	// Setup
	gameErr := NewGameError(ErrRoundNotFound, "round not found")
	regularErr := errors.New("regular error")

	// Test cases
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Game error",
			err:      gameErr,
			expected: true,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			expected: false,
		},
		{
			name:     "Wrapped game error",
			err:      fmt.Errorf("handler: %w", gameErr),
			expected: true,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: false,
		},
	}

	// Execute and assert
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			var target *GameError
			result := As(tc.err, &target)
			s.Equal(tc.expected, result, "As result should match expected value")
			if tc.expected {
				s.Equal(gameErr, target, "Target should be set to the game error")
			}
		})
	}
}

func (s *ErrorTestSuite) TestClassify() {
	testCases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{name: "invalid action", err: blackjack.ErrInvalidAction, code: ErrInvalidAction},
		{name: "wrapped empty deck", err: fmt.Errorf("error dealing: %w", entities.ErrEmptyDeck), code: ErrEmptyDeck},
		{name: "bust hand", err: blackjack.ErrHandBust, code: ErrHandBust},
		{name: "bad card", err: fmt.Errorf("%w: unknown suit", entities.ErrInvalidCard), code: ErrBadCard},
		{name: "expired scenario", err: trainer.ErrScenarioNotFound, code: ErrScenarioNotFound},
		{name: "existing game error", err: NewGameError(ErrPermissionDenied, "not your table"), code: ErrPermissionDenied},
		{name: "unknown error", err: errors.New("disk full"), code: ErrInternalError},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			gameErr := Classify(tc.err)
			s.Require().NotNil(gameErr)
			s.Equal(tc.code, gameErr.Code)
			s.NotEmpty(gameErr.Message)
			s.ErrorIs(gameErr, tc.err)
		})
	}

	s.Nil(Classify(nil))
}
