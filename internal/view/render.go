package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"cue-cards/internal/domain"
)

// Messages shown when there is nothing to render
const (
	EmptySessionTitle   = "All caught up!"
	EmptySessionMessage = "No cards available in this session."
	NoMatchingTasks     = "No tasks found matching your search."
	NoCategories        = "No categories yet."
)

// RenderCueCard writes a single card as it appears in a session
func RenderCueCard(w io.Writer, card domain.Card) error {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]\n", card.Category)
	fmt.Fprintf(&b, "%s\n", card.Description)
	if len(card.Subtasks) > 0 {
		fmt.Fprintf(&b, "\nSubtasks (%d/%d)\n", card.CompletedSubtasks(), len(card.Subtasks))
		for _, st := range card.Subtasks {
			mark := " "
			if st.IsCompleted {
				mark = "x"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", mark, st.Text)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderEmptySession writes the message shown when a session has no cards
func RenderEmptySession(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", EmptySessionTitle, EmptySessionMessage)
	return err
}

// RenderTaskList writes every card matching filter as a table. Active cards
// whose repeat window has elapsed at now are flagged in the DUE column.
func RenderTaskList(w io.Writer, cards []domain.Card, filter, dateFormat string, now time.Time) error {
	matches := domain.FilterCards(cards, filter)
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, NoMatchingTasks)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tDESCRIPTION\tREPEAT\tLAST DONE\tDUE")
	for _, c := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Category, describe(c), repeatLabel(c), lastDoneLabel(c, dateFormat), dueLabel(c, now))
	}
	return tw.Flush()
}

// RenderCategories writes each category with its active card count
func RenderCategories(w io.Writer, summary []domain.CategoryCount) error {
	if len(summary) == 0 {
		_, err := fmt.Fprintln(w, NoCategories)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tACTIVE")
	for _, s := range summary {
		fmt.Fprintf(tw, "%s\t%d\n", s.Name, s.ActiveCards)
	}
	return tw.Flush()
}

func describe(c domain.Card) string {
	desc := strings.Join(strings.Fields(c.Description), " ")
	if c.IsArchived {
		desc += " (archived)"
	}
	return desc
}

func repeatLabel(c domain.Card) string {
	if c.DoesNotRepeat {
		return "once"
	}
	if c.RepeatFrequency == 1 {
		return "every day"
	}
	return fmt.Sprintf("every %d days", c.RepeatFrequency)
}

func dueLabel(c domain.Card, now time.Time) string {
	if c.IsActive() && c.IsDue(now) {
		return "due"
	}
	return "-"
}

func lastDoneLabel(c domain.Card, dateFormat string) string {
	if c.LastDone == nil {
		return "never"
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return c.LastDone.Local().Format(dateFormat)
}
