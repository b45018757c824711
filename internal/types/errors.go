package types

import (
	"errors"
	"fmt"

	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
	"github.com/fadedpez/tucotrainer/pkg/services/wallet"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Round errors
	ErrRoundNotFound     ErrorCode = "ROUND_NOT_FOUND"
	ErrRoundInProgress   ErrorCode = "ROUND_IN_PROGRESS"
	ErrInvalidAction     ErrorCode = "INVALID_ACTION"
	ErrInvalidBet        ErrorCode = "INVALID_BET"
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrEmptyDeck         ErrorCode = "EMPTY_DECK"

	// Strategy errors
	ErrHandBust  ErrorCode = "HAND_BUST"
	ErrEmptyHand ErrorCode = "EMPTY_HAND"
	ErrBadCard   ErrorCode = "INVALID_CARD"

	// Trainer errors
	ErrScenarioNotFound ErrorCode = "SCENARIO_NOT_FOUND"
	ErrAlreadyAnswered  ErrorCode = "ALREADY_ANSWERED"

	// Request errors
	ErrCommandNotFound  ErrorCode = "COMMAND_NOT_FOUND"
	ErrInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// GameError represents a game-related error
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsGameError checks if an error is a GameError and has a specific code
func IsGameError(err error, code ErrorCode) bool {
	var gameErr *GameError
	if !As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}

// As finds the first GameError in err's chain
func As(err error, target **GameError) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}

// known maps package sentinel errors to the code and message a player sees
var known = []struct {
	err     error
	code    ErrorCode
	message string
}{
	{blackjack.ErrInvalidAction, ErrInvalidAction, "You can't do that right now."},
	{blackjack.ErrRoundNotFinished, ErrRoundInProgress, "Finish the current hand first."},
	{blackjack.ErrInvalidBet, ErrInvalidBet, "That bet isn't valid."},
	{blackjack.ErrInsufficientFunds, ErrInsufficientFunds, "You don't have enough money for that."},
	{wallet.ErrInsufficientFunds, ErrInsufficientFunds, "You don't have enough money for that."},
	{entities.ErrEmptyDeck, ErrEmptyDeck, "The deck ran out of cards."},
	{blackjack.ErrHandBust, ErrHandBust, "That hand is already bust."},
	{blackjack.ErrEmptyHand, ErrEmptyHand, "A hand needs at least one card."},
	{entities.ErrInvalidCard, ErrBadCard, "That isn't a valid card."},
	{trainer.ErrScenarioNotFound, ErrScenarioNotFound, "That scenario has expired. Deal a new one."},
	{trainer.ErrAlreadyAnswered, ErrAlreadyAnswered, "You already answered this one."},
	{trainer.ErrInvalidAnswer, ErrInvalidArgument, "Pick Hit, Stand, Double or Split."},
}

// Classify returns err as a GameError. Errors that are already GameErrors
// keep their code; known sentinels get their player-facing message; anything
// else is an internal error.
func Classify(err error) *GameError {
	if err == nil {
		return nil
	}

	var gameErr *GameError
	if As(err, &gameErr) {
		return gameErr
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			return WrapError(k.code, k.message, err)
		}
	}

	return WrapError(ErrInternalError, "Something went wrong. Try again in a moment.", err)
}
