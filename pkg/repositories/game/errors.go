package game

import "errors"

// ErrInvalidRecord is returned when a record is missing its player
var ErrInvalidRecord = errors.New("invalid record")
