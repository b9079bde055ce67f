package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("update stats: %w", NewValidationError("correctAnswers", "must not exceed totalAttempts"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, errors.Is(err, ErrNotFound))

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "correctAnswers", vErr.Field)
	assert.Equal(t, "update stats: validation: correctAnswers must not exceed totalAttempts", err.Error())
}
