package cli

import (
	"context"
	"strings"

	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/view"
)

// AddCommand creates a new card
type AddCommand struct {
	app *App

	Category string
	Repeat   int
	Once     bool
	Subtasks []string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, Repeat: 1}
}

// Execute creates a card described by the joined args
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.app.errors.Handle("add card", apperrors.NewInvalidInputError("description", "", "a description is required"))
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("add card", err)
	}

	data := c.app.store.Data()
	form := view.NewCardForm(data.Categories, nil, c.app.cardValidator)
	form.Description = strings.Join(args, " ")
	form.RepeatFrequency = c.Repeat
	form.DoesNotRepeat = c.Once
	setFormCategory(form, data, c.Category)
	for _, text := range c.Subtasks {
		form.AddSubtask(text)
	}

	card, err := form.Apply(nil)
	if err != nil {
		return c.app.errors.Handle("add card", err)
	}
	if err := c.app.store.AddCard(ctx, card); err != nil {
		return c.app.errors.Handle("add card", c.app.saveFailed(err))
	}
	if err := c.app.ensureCategory(ctx, card.Category); err != nil {
		return c.app.errors.Handle("add category", err)
	}

	c.app.printf("Added card %s: %s\n", card.ID, card.Description)
	return nil
}

// setFormCategory selects a known category or types a new one
func setFormCategory(form *view.CardForm, data *domain.AppData, category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}
	if data.HasCategory(category) {
		form.Category = category
		form.NewCategory = ""
		return
	}
	form.NewCategory = category
}
