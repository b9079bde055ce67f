package service

import (
	"context"
	"fmt"
	"testing"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWordService_Words(t *testing.T) {
	tests := []struct {
		name          string
		mockWords     []domain.Word
		mockError     error
		expectedError error
	}{
		{
			name:      "words loaded",
			mockWords: testutil.NewTestWords(),
		},
		{
			name:          "empty list",
			mockWords:     []domain.Word{},
			expectedError: domain.ErrEmptyWordSet,
		},
		{
			name:          "source reports empty set",
			mockError:     fmt.Errorf("parse: %w", domain.ErrEmptyWordSet),
			expectedError: domain.ErrEmptyWordSet,
		},
		{
			name:          "unclassified source error",
			mockError:     fmt.Errorf("connection refused"),
			expectedError: domain.ErrWordSourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSource := new(testutil.MockWordSource)
			mockSource.On("Words", mock.Anything).Return(tt.mockWords, tt.mockError)

			service := NewWordService(mockSource, testutil.NewTestLogger())

			words, err := service.Words(context.Background())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, words)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.mockWords, words)
			}

			mockSource.AssertExpectations(t)
		})
	}
}
