package cli

import (
	"context"

	apperrors "cue-cards/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute deletes the card named by args[0]
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errors.Handle("delete card", apperrors.NewInvalidInputError("id", args, "exactly one card id is required"))
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("delete card", err)
	}

	card, err := c.app.findCard(args[0])
	if err != nil {
		return c.app.errors.Handle("delete card", err)
	}
	if err := c.app.store.DeleteCard(ctx, card.ID); err != nil {
		return c.app.errors.Handle("delete card", c.app.saveFailed(err))
	}

	c.app.printf("Deleted card: %s\n", card.Description)
	return nil
}
