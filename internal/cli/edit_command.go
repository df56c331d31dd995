package cli

import (
	"context"
	"slices"
	"strconv"
	"strings"

	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/view"
)

// EditCommand changes fields of an existing card. Nil fields are left as they are.
type EditCommand struct {
	app *App

	Description    *string
	Category       *string
	Repeat         *int
	Once           *bool
	AddSubtasks    []string
	ClearSubtasks  bool
	RemoveSubtasks []int    // 1-based positions in the card's current subtask list
	MoveSubtasks   []string // "FROM:TO" pairs of 1-based positions, applied after removals
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute edits the card named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return c.app.errors.Handle("edit card", apperrors.NewInvalidInputError("id", args, "exactly one card id is required"))
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("edit card", err)
	}

	base, err := c.app.findCard(args[0])
	if err != nil {
		return c.app.errors.Handle("edit card", err)
	}

	data := c.app.store.Data()
	form := view.NewCardForm(data.Categories, &base, c.app.cardValidator)
	if c.Description != nil {
		form.Description = *c.Description
	}
	if c.Category != nil {
		setFormCategory(form, data, *c.Category)
	}
	if c.Repeat != nil {
		form.RepeatFrequency = *c.Repeat
	}
	if c.Once != nil {
		form.DoesNotRepeat = *c.Once
	}
	if c.ClearSubtasks {
		form.Subtasks = nil
	}
	if err := c.removeSubtasks(form); err != nil {
		return c.app.errors.Handle("edit card", err)
	}
	for _, move := range c.MoveSubtasks {
		from, to, err := parseSubtaskMove(move)
		if err != nil || !form.MoveSubtask(from-1, to-1) {
			return c.app.errors.Handle("edit card", apperrors.NewInvalidInputError("move-subtask", move, "expected FROM:TO with positions between 1 and the subtask count"))
		}
	}
	for _, text := range c.AddSubtasks {
		form.AddSubtask(text)
	}

	card, err := form.Apply(&base)
	if err != nil {
		return c.app.errors.Handle("edit card", err)
	}
	if err := c.app.store.UpdateCard(ctx, card); err != nil {
		return c.app.errors.Handle("edit card", c.app.saveFailed(err))
	}
	if err := c.app.ensureCategory(ctx, card.Category); err != nil {
		return c.app.errors.Handle("add category", err)
	}

	c.app.printf("Updated card %s: %s\n", card.ID, card.Description)
	return nil
}

// removeSubtasks drops subtasks by position. Positions refer to the list before any removal.
func (c *EditCommand) removeSubtasks(form *view.CardForm) error {
	positions := slices.Clone(c.RemoveSubtasks)
	slices.Sort(positions)
	positions = slices.Compact(positions)

	ids := make([]string, 0, len(positions))
	for _, pos := range positions {
		if pos < 1 || pos > len(form.Subtasks) {
			return apperrors.NewInvalidInputError("remove-subtask", pos, "position must be between 1 and the subtask count")
		}
		ids = append(ids, form.Subtasks[pos-1].ID)
	}
	for _, id := range ids {
		form.RemoveSubtask(id)
	}
	return nil
}

func parseSubtaskMove(value string) (int, int, error) {
	fromText, toText, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, strconv.ErrSyntax
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromText))
	if err != nil {
		return 0, 0, err
	}
	to, err := strconv.Atoi(strings.TrimSpace(toText))
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}
