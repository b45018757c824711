package api

import (
	"errors"
	"net/http"

	"github.com/fadedpez/tucotrainer/internal/logging"
	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/fadedpez/tucotrainer/pkg/entities"
)

var statusByCode = map[types.ErrorCode]int{
	types.ErrHandBust:         http.StatusUnprocessableEntity,
	types.ErrEmptyHand:        http.StatusUnprocessableEntity,
	types.ErrBadCard:          http.StatusBadRequest,
	types.ErrInvalidArgument:  http.StatusBadRequest,
	types.ErrInvalidAction:    http.StatusBadRequest,
	types.ErrScenarioNotFound: http.StatusNotFound,
	types.ErrRoundNotFound:    http.StatusNotFound,
	types.ErrCommandNotFound:  http.StatusNotFound,
	types.ErrAlreadyAnswered:  http.StatusConflict,
	types.ErrPermissionDenied: http.StatusForbidden,
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    types.ErrorCode `json:"code"`
	Message string          `json:"message"`
}

// writeError classifies err and writes it with the matching status
func writeError(w http.ResponseWriter, err error) {
	gameErr := types.Classify(err)
	status, ok := statusByCode[gameErr.Code]
	if !ok {
		status = http.StatusInternalServerError
		logging.Default.LogError(gameErr)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: gameErr.Code, Message: gameErr.Message}})
}

// badRequest reports a malformed body. Card parse failures keep their own
// code.
func badRequest(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, entities.ErrInvalidCard) {
		writeError(w, err)
		return
	}
	writeError(w, types.WrapError(types.ErrInvalidArgument, message, err))
}
