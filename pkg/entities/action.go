package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is a player decision recommended by basic strategy
type Action int

const (
	ActionHit Action = iota + 1
	ActionStand
	ActionDouble
	ActionSplit
)

// Actions lists every action in display order
var Actions = []Action{ActionHit, ActionStand, ActionDouble, ActionSplit}

var actionNames = map[Action]string{
	ActionHit:    "Hit",
	ActionStand:  "Stand",
	ActionDouble: "Double",
	ActionSplit:  "Split",
}

// String returns the action label
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid reports whether a is one of the four actions
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction parses an action label, ignoring case
func ParseAction(s string) (Action, error) {
	for action, name := range actionNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// MarshalJSON encodes the action as its label
func (a Action) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid action %d", int(a))
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an action label
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
