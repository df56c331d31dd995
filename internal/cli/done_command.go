package cli

import (
	"context"

	apperrors "cue-cards/internal/errors"
)

// DoneCommand marks a card done now
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute marks the card named by args[0] done
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errors.Handle("mark card done", apperrors.NewInvalidInputError("id", args, "exactly one card id is required"))
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("mark card done", err)
	}

	card, err := c.app.findCard(args[0])
	if err != nil {
		return c.app.errors.Handle("mark card done", err)
	}
	if err := c.app.store.MarkDone(ctx, card.ID); err != nil {
		return c.app.errors.Handle("mark card done", c.app.saveFailed(err))
	}

	c.app.printf("Done: %s\n", card.Description)
	return nil
}

// ArchiveCommand archives or restores a card
type ArchiveCommand struct {
	app      *App
	archived bool
}

// NewArchiveCommand creates a handler that sets the archived flag to archived
func NewArchiveCommand(app *App, archived bool) *ArchiveCommand {
	return &ArchiveCommand{app: app, archived: archived}
}

// Execute updates the card named by args[0]
func (c *ArchiveCommand) Execute(ctx context.Context, args []string) error {
	operation := "archive card"
	if !c.archived {
		operation = "unarchive card"
	}

	if len(args) != 1 {
		return c.app.errors.Handle(operation, apperrors.NewInvalidInputError("id", args, "exactly one card id is required"))
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle(operation, err)
	}

	card, err := c.app.findCard(args[0])
	if err != nil {
		return c.app.errors.Handle(operation, err)
	}
	if err := c.app.store.ArchiveCard(ctx, card.ID, c.archived); err != nil {
		return c.app.errors.Handle(operation, c.app.saveFailed(err))
	}

	if c.archived {
		c.app.printf("Archived: %s\n", card.Description)
	} else {
		c.app.printf("Restored: %s\n", card.Description)
	}
	return nil
}
