package cli

import (
	"context"
	"strings"

	"cue-cards/internal/domain"
	apperrors "cue-cards/internal/errors"
	"cue-cards/internal/view"
)

// CategoriesCommand prints each category with its active card count
type CategoriesCommand struct {
	app *App
}

// NewCategoriesCommand creates a new categories command handler
func NewCategoriesCommand(app *App) *CategoriesCommand {
	return &CategoriesCommand{app: app}
}

// Execute runs the categories command
func (c *CategoriesCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("list categories", err)
	}
	return view.RenderCategories(c.app.out, domain.SummarizeCategories(c.app.store.Data()))
}

// AddCategoryCommand adds a category to the set
type AddCategoryCommand struct {
	app *App
}

// NewAddCategoryCommand creates a new add category command handler
func NewAddCategoryCommand(app *App) *AddCategoryCommand {
	return &AddCategoryCommand{app: app}
}

// Execute adds the category named by the joined args
func (c *AddCategoryCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.app.errors.Handle("add category", apperrors.NewInvalidInputError("name", "", "a category name is required"))
	}

	name, err := c.app.categoryValidator.GetValidCategory(strings.Join(args, " "))
	if err != nil {
		return c.app.errors.Handle("add category", err)
	}
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("add category", err)
	}

	if c.app.store.Data().HasCategory(name) {
		c.app.printf("Category already exists: %s\n", name)
		return nil
	}
	if err := c.app.store.AddCategory(ctx, name); err != nil {
		return c.app.errors.Handle("add category", c.app.saveFailed(err))
	}

	c.app.printf("Added category: %s\n", name)
	return nil
}
