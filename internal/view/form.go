package view

import (
	"strings"

	"cue-cards/internal/domain"
	"cue-cards/internal/validation"
)

// CardForm collects the fields of a card being created or edited
type CardForm struct {
	Description     string
	Category        string
	NewCategory     string
	RepeatFrequency int
	DoesNotRepeat   bool
	Subtasks        []domain.Subtask

	validator *validation.CardValidator
}

// NewCardForm prepares a form. With initial nil the form starts blank, with the
// first known category (or the default one) and a daily repeat.
func NewCardForm(categories []string, initial *domain.Card, validator *validation.CardValidator) *CardForm {
	if validator == nil {
		validator = validation.NewCardValidator()
	}
	f := &CardForm{
		Category:        domain.DefaultCategory,
		RepeatFrequency: 1,
		validator:       validator,
	}
	if len(categories) > 0 {
		f.Category = categories[0]
	}
	if initial != nil {
		f.Description = initial.Description
		f.Category = initial.Category
		f.DoesNotRepeat = initial.DoesNotRepeat
		if initial.RepeatFrequency > 0 {
			f.RepeatFrequency = initial.RepeatFrequency
		}
		f.Subtasks = append([]domain.Subtask(nil), initial.Subtasks...)
	}
	return f
}

// AddSubtask appends a new open subtask
func (f *CardForm) AddSubtask(text string) {
	f.Subtasks = append(f.Subtasks, domain.NewSubtask(strings.TrimSpace(text)))
}

// RemoveSubtask drops the subtask with id
func (f *CardForm) RemoveSubtask(id string) bool {
	for i, st := range f.Subtasks {
		if st.ID == id {
			f.Subtasks = append(f.Subtasks[:i], f.Subtasks[i+1:]...)
			return true
		}
	}
	return false
}

// MoveSubtask moves the subtask at from to position to
func (f *CardForm) MoveSubtask(from, to int) bool {
	if from < 0 || from >= len(f.Subtasks) || to < 0 || to >= len(f.Subtasks) {
		return false
	}
	st := f.Subtasks[from]
	f.Subtasks = append(f.Subtasks[:from], f.Subtasks[from+1:]...)
	f.Subtasks = append(f.Subtasks[:to], append([]domain.Subtask{st}, f.Subtasks[to:]...)...)
	return true
}

// SelectedCategory returns the new category when one was typed, else the chosen one
func (f *CardForm) SelectedCategory() string {
	if name := strings.TrimSpace(f.NewCategory); name != "" {
		return name
	}
	return strings.TrimSpace(f.Category)
}

// Apply produces the card to hand to the store. A nil base creates a new card
// with a fresh id and no completion time; otherwise the edit keeps the base's
// id, completion time and archive flag.
func (f *CardForm) Apply(base *domain.Card) (domain.Card, error) {
	var card domain.Card
	if base == nil {
		card = domain.NewCard(strings.TrimSpace(f.Description), f.SelectedCategory(), f.RepeatFrequency)
	} else {
		card = base.Clone()
		card.Description = strings.TrimSpace(f.Description)
		card.Category = f.SelectedCategory()
		card.RepeatFrequency = f.RepeatFrequency
	}
	card.DoesNotRepeat = f.DoesNotRepeat
	card.Subtasks = nil
	if len(f.Subtasks) > 0 {
		card.Subtasks = append([]domain.Subtask(nil), f.Subtasks...)
	}

	if err := f.validator.ValidateCard(card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}
