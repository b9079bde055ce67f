package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/repository"

	"go.uber.org/zap"
)

// StatsService reads and overwrites per-module attempt statistics
type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetModuleStats returns the learner's record for a module.
// A missing record is reported as zero counters.
func (s *StatsService) GetModuleStats(ctx context.Context, userID int64, moduleID string) (domain.UserStat, error) {
	stat, err := s.statsRepo.GetStats(ctx, userID, moduleID)
	if err != nil {
		return domain.UserStat{}, err
	}
	if stat == nil {
		return domain.UserStat{UserID: userID, ModuleID: moduleID}, nil
	}
	return *stat, nil
}

// GetAllStats returns every module record of the learner
func (s *StatsService) GetAllStats(ctx context.Context, userID int64) ([]domain.UserStat, error) {
	return s.statsRepo.ListStats(ctx, userID)
}

// UpdateStats replaces the learner's counters for a module
func (s *StatsService) UpdateStats(ctx context.Context, userID int64, moduleID string, totalAttempts, correctAnswers int) (*domain.UserStat, error) {
	if err := validateStats(moduleID, totalAttempts, correctAnswers); err != nil {
		return nil, err
	}

	return s.statsRepo.UpsertStats(ctx, domain.UserStat{
		UserID:         userID,
		ModuleID:       moduleID,
		TotalAttempts:  totalAttempts,
		CorrectAnswers: correctAnswers,
	})
}

// WriteStats stores a drill snapshot. Failures wrap ErrStatsWriteFailed.
func (s *StatsService) WriteStats(ctx context.Context, userID int64, moduleID string, totalAttempts, correctAnswers int) error {
	if _, err := s.UpdateStats(ctx, userID, moduleID, totalAttempts, correctAnswers); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStatsWriteFailed, err)
	}
	return nil
}

func validateStats(moduleID string, totalAttempts, correctAnswers int) error {
	switch {
	case moduleID == "":
		return domain.NewValidationError("moduleId", "must not be empty")
	case utf8.RuneCountInString(moduleID) > domain.MaxModuleIDLength:
		return domain.NewValidationError("moduleId", fmt.Sprintf("must be at most %d characters", domain.MaxModuleIDLength))
	case totalAttempts < 0:
		return domain.NewValidationError("totalAttempts", "must not be negative")
	case correctAnswers < 0:
		return domain.NewValidationError("correctAnswers", "must not be negative")
	case correctAnswers > totalAttempts:
		return domain.NewValidationError("correctAnswers", "must not exceed totalAttempts")
	}
	return nil
}
