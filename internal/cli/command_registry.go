package cli

import (
	"context"
	"sort"
	"strings"

	apperrors "cue-cards/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages the commands that take only positional arguments
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("session", NewSessionCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("categories", NewCategoriesCommand(app))
	registry.Register("add-category", NewAddCategoryCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("done", NewDoneCommand(app))
	registry.Register("archive", NewArchiveCommand(app, true))
	registry.Register("unarchive", NewArchiveCommand(app, false))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Get returns the command registered under name
func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return apperrors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "usage: cc <" + strings.Join(names, "|") + "> [args]"
}
