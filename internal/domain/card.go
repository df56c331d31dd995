package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is used by the card form when no category exists yet.
const DefaultCategory = "General"

// Subtask is an ordered checklist item owned by a Card.
type Subtask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// NewSubtask creates an incomplete subtask with a fresh id.
func NewSubtask(text string) Subtask {
	return Subtask{
		ID:   uuid.New().String(),
		Text: text,
	}
}

// Card represents a recurring task shown one at a time in a session.
// RepeatFrequency is advisory; nothing schedules against it.
type Card struct {
	ID              string     `json:"id"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	LastDone        *time.Time `json:"lastDone"`
	RepeatFrequency int        `json:"repeatFrequency"`
	DoesNotRepeat   bool       `json:"doesNotRepeat,omitempty"`
	IsArchived      bool       `json:"isArchived,omitempty"`
	Subtasks        []Subtask  `json:"subtasks,omitempty"`
}

// NewCard creates a never-completed card with a unique id.
func NewCard(description, category string, repeatFrequency int) Card {
	return Card{
		ID:              uuid.New().String(),
		Description:     description,
		Category:        category,
		LastDone:        nil,
		RepeatFrequency: repeatFrequency,
	}
}

// IsActive reports whether the card takes part in session selection.
func (c Card) IsActive() bool {
	return !c.IsArchived
}

// IsDue reports whether the card's repeat window has elapsed at now.
// Cards never done are always due; completed non-repeating cards never are.
func (c Card) IsDue(now time.Time) bool {
	if c.LastDone == nil {
		return true
	}
	if c.DoesNotRepeat {
		return false
	}
	next := c.LastDone.AddDate(0, 0, c.RepeatFrequency)
	return !next.After(now)
}

// MarkDone returns a copy of the card completed at the given time.
func (c Card) MarkDone(at time.Time) Card {
	done := c.Clone()
	t := at.UTC()
	done.LastDone = &t
	return done
}

// ToggleSubtask flips the completion flag of the subtask with the given id.
// It returns false when no subtask matches.
func (c *Card) ToggleSubtask(id string) bool {
	for i := range c.Subtasks {
		if c.Subtasks[i].ID == id {
			c.Subtasks[i].IsCompleted = !c.Subtasks[i].IsCompleted
			return true
		}
	}
	return false
}

// CompletedSubtasks counts the subtasks marked complete.
func (c Card) CompletedSubtasks() int {
	n := 0
	for _, s := range c.Subtasks {
		if s.IsCompleted {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no memory with c.
func (c Card) Clone() Card {
	out := c
	if c.LastDone != nil {
		t := *c.LastDone
		out.LastDone = &t
	}
	if c.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(c.Subtasks))
		copy(out.Subtasks, c.Subtasks)
	}
	return out
}

// String returns the description for display purposes.
func (c Card) String() string {
	return c.Description
}
