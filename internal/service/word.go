package service

import (
	"context"
	"errors"
	"fmt"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/repository"

	"go.uber.org/zap"
)

// WordService provides drill words and classifies load failures
type WordService struct {
	source repository.WordSource
	logger *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(source repository.WordSource, logger *zap.Logger) *WordService {
	return &WordService{source: source, logger: logger}
}

// Words loads the word list. Errors wrap ErrEmptyWordSet or
// ErrWordSourceUnavailable.
func (s *WordService) Words(ctx context.Context) ([]domain.Word, error) {
	words, err := s.source.Words(ctx)
	if err != nil {
		s.logger.Error("Failed to load words", zap.Error(err))
		if errors.Is(err, domain.ErrEmptyWordSet) || errors.Is(err, domain.ErrWordSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrWordSourceUnavailable, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("load words: %w", domain.ErrEmptyWordSet)
	}
	return words, nil
}
