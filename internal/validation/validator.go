package validation

import (
	"strings"
	"unicode/utf8"

	"cue-cards/internal/config"
)

const (
	defaultDescriptionMaxLength = 1000
	defaultMaxRepeatFrequency   = 3650
	defaultCategoryMaxLength    = 100
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks the trimmed rune length of s against max
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidRepeatFrequency checks that days is a positive day count within the configured limit
func (v *Validator) IsValidRepeatFrequency(days int) bool {
	return days >= 1 && days <= v.MaxRepeatFrequency()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}

// MaxRepeatFrequency returns configured maximum repeat frequency or default
func (v *Validator) MaxRepeatFrequency() int {
	if v.config != nil {
		return v.config.Validation.MaxRepeatFrequency
	}
	return defaultMaxRepeatFrequency
}

// CategoryMaxLength returns configured maximum category length or default
func (v *Validator) CategoryMaxLength() int {
	if v.config != nil {
		return v.config.Validation.CategoryMaxLength
	}
	return defaultCategoryMaxLength
}
