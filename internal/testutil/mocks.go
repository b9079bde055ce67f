package testutil

import (
	"context"

	"orfoepiya/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertByNickname(ctx context.Context, nickname string) (*domain.UserAccount, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAccount), args.Error(1)
}

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context, userID int64, moduleID string) (*domain.UserStat, error) {
	args := m.Called(ctx, userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStat), args.Error(1)
}

func (m *MockStatsRepository) ListStats(ctx context.Context, userID int64) ([]domain.UserStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserStat), args.Error(1)
}

func (m *MockStatsRepository) UpsertStats(ctx context.Context, stat domain.UserStat) (*domain.UserStat, error) {
	args := m.Called(ctx, stat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStat), args.Error(1)
}

// MockWordSource is a mock for WordSource
type MockWordSource struct {
	mock.Mock
}

func (m *MockWordSource) Words(ctx context.Context) ([]domain.Word, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

// MockStatsWriter is a mock for the drill stats writer
type MockStatsWriter struct {
	mock.Mock
}

func (m *MockStatsWriter) WriteStats(ctx context.Context, userID int64, moduleID string, totalAttempts, correctAnswers int) error {
	args := m.Called(ctx, userID, moduleID, totalAttempts, correctAnswers)
	return args.Error(0)
}
