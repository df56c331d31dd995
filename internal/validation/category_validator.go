package validation

import "cue-cards/internal/config"

// CategoryValidator validates category names
type CategoryValidator struct {
	validator *Validator
}

// NewCategoryValidator creates a new category validator with default limits
func NewCategoryValidator() *CategoryValidator {
	return &CategoryValidator{validator: NewValidator()}
}

// NewCategoryValidatorWithConfig creates a category validator using configured limits
func NewCategoryValidatorWithConfig(cfg *config.Config) *CategoryValidator {
	return &CategoryValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateCategory validates a category name
func (cv *CategoryValidator) ValidateCategory(name string) error {
	validationError := NewValidationError()

	if !cv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("category")
		return validationError
	}

	maxLen := cv.validator.CategoryMaxLength()
	if !cv.validator.IsWithinLength(name, maxLen) {
		validationError.AddInvalidLengthError("category", name, maxLen)
	}

	return validationError.errOrNil()
}

// GetValidCategory returns a cleaned category name if valid
func (cv *CategoryValidator) GetValidCategory(name string) (string, error) {
	if err := cv.ValidateCategory(name); err != nil {
		return "", err
	}
	return cv.validator.TrimAndValidateString(name), nil
}
