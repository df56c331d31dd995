package cli

import (
	"context"
	"strings"

	"cue-cards/internal/view"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute lists all cards whose description or category contains the joined args
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("list cards", err)
	}

	filter := strings.Join(args, " ")
	data := c.app.store.Data()
	return view.RenderTaskList(c.app.out, data.Cards, filter, c.app.config.Display.DateFormat, c.app.store.Now())
}
