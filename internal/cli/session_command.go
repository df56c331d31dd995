package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"cue-cards/internal/domain"
	"cue-cards/internal/session"
	"cue-cards/internal/view"
)

const sessionPrompt = "[d]one  [s]kip  [e]dit  [c]ategory  [t]oggle <n>  [q]uit > "

// SessionCommand shows active cards one at a time and reads actions from input
type SessionCommand struct {
	app     *App
	options []session.Option
}

// NewSessionCommand creates a new session command handler
func NewSessionCommand(app *App, opts ...session.Option) *SessionCommand {
	return &SessionCommand{app: app, options: opts}
}

// Execute runs the interactive session until the user quits or input ends
func (c *SessionCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.load(ctx); err != nil {
		return c.app.errors.Handle("start session", err)
	}

	policy, err := session.ParsePolicy(c.app.config.Session.Reconcile)
	if err != nil {
		return c.app.errors.Handle("start session", err)
	}
	opts := append([]session.Option{session.WithPolicy(policy)}, c.options...)
	sel := session.New(c.app.store, opts...)
	sel.Prime(c.app.store.Data().Cards)

	input := bufio.NewScanner(c.app.in)
	for {
		card, ok := sel.Current()
		if !ok {
			return view.RenderEmptySession(c.app.out)
		}

		c.app.printf("\n")
		if err := view.RenderCueCard(c.app.out, card); err != nil {
			return err
		}
		c.app.printf("\n%s", sessionPrompt)

		if !input.Scan() {
			c.app.printf("\n")
			return input.Err()
		}
		action, rest := splitAction(input.Text())

		var actionErr error
		switch action {
		case "d", "done":
			actionErr = sel.MarkCurrentDone(ctx)
		case "s", "skip", "":
			sel.Advance()
		case "e", "edit":
			actionErr = c.editDescription(ctx, sel, card, c.ask(input, rest, "Description: "))
		case "c", "category":
			actionErr = c.changeCategory(ctx, sel, card, c.ask(input, rest, "Category: "))
		case "t", "toggle":
			actionErr = c.toggleSubtask(ctx, sel, card, rest)
		case "q", "quit":
			return nil
		default:
			c.app.printf("Unknown action %q\n", action)
		}

		if actionErr != nil {
			c.app.printf("%v\n", c.app.errors.HandleSimple(actionErr))
		}
		sel.Sync(c.app.store.Data().Cards)
	}
}

// ask returns given, or prompts for and reads a line when given is empty
func (c *SessionCommand) ask(input *bufio.Scanner, given, prompt string) string {
	if given != "" {
		return given
	}
	c.app.printf("%s", prompt)
	if !input.Scan() {
		return ""
	}
	return strings.TrimSpace(input.Text())
}

func (c *SessionCommand) editDescription(ctx context.Context, sel *session.Selector, card domain.Card, description string) error {
	form := view.NewCardForm(nil, &card, c.app.cardValidator)
	form.Description = description
	updated, err := form.Apply(&card)
	if err != nil {
		return err
	}
	if err := sel.UpdateCurrent(ctx, updated); err != nil {
		return c.app.saveFailed(err)
	}
	return nil
}

func (c *SessionCommand) changeCategory(ctx context.Context, sel *session.Selector, card domain.Card, category string) error {
	name, err := c.app.categoryValidator.GetValidCategory(category)
	if err != nil {
		return err
	}
	card.Category = name
	if err := sel.UpdateCurrent(ctx, card); err != nil {
		return c.app.saveFailed(err)
	}
	return c.app.ensureCategory(ctx, name)
}

func (c *SessionCommand) toggleSubtask(ctx context.Context, sel *session.Selector, card domain.Card, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(card.Subtasks) {
		return fmt.Errorf("choose a subtask between 1 and %d", len(card.Subtasks))
	}
	card = card.Clone()
	card.ToggleSubtask(card.Subtasks[n-1].ID)
	if err := sel.UpdateCurrent(ctx, card); err != nil {
		return c.app.saveFailed(err)
	}
	return nil
}

// splitAction separates the first word of line from the rest
func splitAction(line string) (string, string) {
	line = strings.TrimSpace(line)
	action, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(action), strings.TrimSpace(rest)
}
