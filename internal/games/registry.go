package games

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/tucotrainer/internal/types"
)

// Registry routes slash commands and buttons to their managers
type Registry struct {
	managers map[string]Manager
	mu       sync.RWMutex
}

// NewRegistry creates a new registry
func NewRegistry() *Registry {
	return &Registry{
		managers: make(map[string]Manager),
	}
}

// Register adds a manager under its command name. Command names and button
// prefixes must be unique.
func (r *Registry) Register(manager Manager) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := manager.Command().Name
	if _, exists := r.managers[name]; exists {
		return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("Command %s is already registered", name))
	}
	for other, m := range r.managers {
		if m.ButtonPrefix() == manager.ButtonPrefix() {
			return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("Button prefix %s is already used by %s", manager.ButtonPrefix(), other))
		}
	}

	r.managers[name] = manager
	return nil
}

// ForCommand returns the manager for a slash command name
func (r *Registry) ForCommand(name string) (Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	manager, exists := r.managers[name]
	if !exists {
		return nil, types.NewGameError(types.ErrCommandNotFound, fmt.Sprintf("Command %s not found", name))
	}
	return manager, nil
}

// ForButton returns the manager whose prefix starts the button's custom ID
func (r *Registry) ForButton(customID string) (Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, manager := range r.managers {
		if strings.HasPrefix(customID, manager.ButtonPrefix()) {
			return manager, nil
		}
	}
	return nil, types.NewGameError(types.ErrCommandNotFound, fmt.Sprintf("No handler for button %s", customID))
}

// Commands returns the slash command definitions sorted by name
func (r *Registry) Commands() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]*discordgo.ApplicationCommand, 0, len(r.managers))
	for _, manager := range r.managers {
		commands = append(commands, manager.Command())
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})
	return commands
}
