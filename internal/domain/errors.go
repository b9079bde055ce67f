package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrWordSourceUnavailable means the word list could not be fetched or parsed
	ErrWordSourceUnavailable = errors.New("word source unavailable")
	// ErrEmptyWordSet means the word source produced no playable words
	ErrEmptyWordSet = errors.New("empty word set")
	// ErrStatsWriteFailed means a statistics snapshot could not be stored
	ErrStatsWriteFailed = errors.New("stats write failed")

	// ErrValidation means an input broke a field rule; see ValidationError
	ErrValidation = errors.New("validation error")
	// ErrNotFound means the referenced learner or record does not exist
	ErrNotFound = errors.New("not found")
)

// ValidationError describes an invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
