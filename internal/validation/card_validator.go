package validation

import (
	"cue-cards/internal/config"
	"cue-cards/internal/domain"
)

// CardValidator provides validation for cards entered by a user
type CardValidator struct {
	validator *Validator
}

// NewCardValidator creates a new card validator with default limits
func NewCardValidator() *CardValidator {
	return &CardValidator{
		validator: NewValidator(),
	}
}

// NewCardValidatorWithConfig creates a card validator using configured limits
func NewCardValidatorWithConfig(cfg *config.Config) *CardValidator {
	return &CardValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateDescription validates the card's descriptive text
func (cv *CardValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()

	if !cv.validator.IsNonEmptyString(description) {
		validationError.AddRequiredError("description")
		return validationError
	}

	maxLen := cv.validator.DescriptionMaxLength()
	if !cv.validator.IsWithinLength(description, maxLen) {
		validationError.AddInvalidLengthError("description", description, maxLen)
	}

	return validationError.errOrNil()
}

// ValidateRepeatFrequency validates the interval in days
func (cv *CardValidator) ValidateRepeatFrequency(days int) error {
	if cv.validator.IsValidRepeatFrequency(days) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidRangeError("repeatFrequency", days, 1, cv.validator.MaxRepeatFrequency())
	return validationError
}

// ValidateSubtasks checks subtask ids are present and unique and text is non-empty
func (cv *CardValidator) ValidateSubtasks(subtasks []domain.Subtask) error {
	validationError := NewValidationError()
	seen := make(map[string]bool, len(subtasks))

	for _, st := range subtasks {
		if st.ID == "" {
			validationError.AddRequiredError("subtask.id")
		} else if seen[st.ID] {
			validationError.AddDuplicateError("subtask.id", st.ID)
		}
		seen[st.ID] = true

		if !cv.validator.IsNonEmptyString(st.Text) {
			validationError.AddRequiredError("subtask.text")
		}
	}

	return validationError.errOrNil()
}

// ValidateCard validates a whole card before it is handed to the store
func (cv *CardValidator) ValidateCard(card domain.Card) error {
	validationError := NewValidationError()

	if card.ID == "" {
		validationError.AddRequiredError("id")
	}
	validationError.merge(cv.ValidateDescription(card.Description))
	validationError.merge(cv.ValidateRepeatFrequency(card.RepeatFrequency))
	validationError.merge(cv.ValidateSubtasks(card.Subtasks))

	return validationError.errOrNil()
}
